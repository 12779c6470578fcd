// internal/application/usecase/dashboard_usecase.go
package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

// DashboardUsecase はダッシュボード用の集計を行う。
// 各集計は独立した読み取りなので errgroup で並行に取得する。
type DashboardUsecase struct {
	productRepo  productdom.Repository
	categoryRepo catdom.Repository
	orderRepo    orderdom.Repository
	contactRepo  contactdom.Repository
	adminRepo    admindom.Repository
	paymentRepo  paymentdom.Repository
	now          func() time.Time
}

func NewDashboardUsecase(
	productRepo productdom.Repository,
	categoryRepo catdom.Repository,
	orderRepo orderdom.Repository,
	contactRepo contactdom.Repository,
	adminRepo admindom.Repository,
	paymentRepo paymentdom.Repository,
) *DashboardUsecase {
	return &DashboardUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		contactRepo:  contactRepo,
		adminRepo:    adminRepo,
		paymentRepo:  paymentRepo,
		now:          time.Now,
	}
}

// Stats は件数・決済集計・直近 12 ヶ月の疎な月次売上を返す。
func (u *DashboardUsecase) Stats(ctx context.Context) (dashboard.Stats, error) {
	var (
		st     dashboard.Stats
		counts paymentdom.StatusCounts
		recent common.PageResult[orderdom.Order]
	)
	yes := true
	from := dashboard.WindowStart(u.now())
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		st.ProductCount, err = u.productRepo.Count(gctx, productdom.Filter{})
		return err
	})
	g.Go(func() (err error) {
		st.HighlightedProductCount, err = u.productRepo.Count(gctx, productdom.Filter{InHighlight: &yes})
		return err
	})
	g.Go(func() (err error) {
		st.CategoryCount, err = u.categoryRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.OrderCount, err = u.orderRepo.Count(gctx, orderdom.Filter{})
		return err
	})
	g.Go(func() (err error) {
		recent, err = u.orderRepo.List(gctx,
			orderdom.Filter{Status: orderdom.StatusCompleted},
			common.Page{Number: 1, PerPage: dashboard.RecentCompletedLimit},
		)
		return err
	})
	g.Go(func() (err error) {
		st.ContactCount, err = u.contactRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.AdminCount, err = u.adminRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts, err = u.paymentRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.TotalRevenue, err = u.paymentRepo.SucceededRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.MonthlyRevenue, err = u.paymentRepo.MonthlyRevenue(gctx, from)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.Stats{}, err
	}

	st.CompletedOrders = recent.Items
	if st.CompletedOrders == nil {
		st.CompletedOrders = []orderdom.Order{}
	}
	if st.MonthlyRevenue == nil {
		st.MonthlyRevenue = []dashboard.MonthlyBucket{}
	}
	st.TotalPayments = counts.Total
	st.SuccessfulPayments = counts.Succeeded
	st.PendingPayments = counts.Pending
	st.FailedPayments = counts.Failed
	return st, nil
}
