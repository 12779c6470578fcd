// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"
	"net/http"

	httpin "github.com/MTalha250/Varzan/internal/adapters/in/http"
	"github.com/MTalha250/Varzan/internal/adapters/in/http/middleware"
	authadp "github.com/MTalha250/Varzan/internal/adapters/out/auth"
	gcso "github.com/MTalha250/Varzan/internal/adapters/out/gcs"
	mailadp "github.com/MTalha250/Varzan/internal/adapters/out/mail"
	uc "github.com/MTalha250/Varzan/internal/application/usecase"
	appcfg "github.com/MTalha250/Varzan/internal/infra/config"
)

// ========================================
// Container
// ========================================

type Container struct {
	Config *appcfg.Config
	Infra  *Infra
	Repos  Repositories

	JWT     *authadp.JWTManager
	Metrics *middleware.Metrics

	ProductUC     *uc.ProductUsecase
	CategoryUC    *uc.CategoryUsecase
	ContactUC     *uc.ContactUsecase
	TestimonialUC *uc.TestimonialUsecase
	ProjectUC     *uc.ProjectUsecase
	OrderUC       *uc.OrderUsecase
	PaymentUC     *uc.PaymentUsecase
	DashboardUC   *uc.DashboardUsecase
	AuthUC        *uc.AuthUsecase
	MediaUC       *uc.MediaUsecase
}

// NewContainer は cfg から外部クライアント・リポジトリ・ユースケースを組み立てる。
func NewContainer(ctx context.Context, cfg *appcfg.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("di: config is nil")
	}

	repos, inf, err := OpenRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := NewContainerWithRepos(cfg, repos, inf)
	if err != nil {
		_ = inf.Close(ctx)
		return nil, err
	}
	log.Printf("[di] container ready (store=%s)", cfg.StoreDriver)
	return c, nil
}

// NewContainerWithRepos はリポジトリを外から与えて組み立てる（テスト・seed 用）。
// inf は nil 可（メール以外の外部連携なし）。
func NewContainerWithRepos(cfg *appcfg.Config, repos Repositories, inf *Infra) (*Container, error) {
	if inf == nil {
		inf = &Infra{}
	}

	jwtm, err := authadp.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("di: %w (set JWT_SECRET)", err)
	}

	// メール（SENDGRID_API_KEY が空なら送らない）
	var (
		paymentMailer   uc.PaymentMailerPort
		contactNotifier uc.ContactNotifierPort
	)
	if cfg.SendGridAPIKey != "" {
		m := mailadp.NewMailersWithSendGrid(cfg.SendGridAPIKey, cfg.SendGridFrom, cfg.NotifyEmail)
		paymentMailer = m.Payment
		contactNotifier = m.Contact
	} else {
		log.Printf("[di] SENDGRID_API_KEY is empty; outbound mail is disabled")
	}

	var idVerifier uc.IDTokenVerifierPort
	if inf.FirebaseAuth != nil {
		idVerifier = authadp.NewFirebaseVerifier(inf.FirebaseAuth)
	}

	dashboardUC := uc.NewDashboardUsecase(
		repos.Products, repos.Categories, repos.Orders,
		repos.Contacts, repos.Admins, repos.Payments,
	)

	c := &Container{
		Config:  cfg,
		Infra:   inf,
		Repos:   repos,
		JWT:     jwtm,
		Metrics: middleware.NewMetrics(),

		ProductUC:     uc.NewProductUsecase(repos.Products, repos.Categories),
		CategoryUC:    uc.NewCategoryUsecase(repos.Categories, repos.Products),
		ContactUC:     uc.NewContactUsecase(repos.Contacts, contactNotifier),
		TestimonialUC: uc.NewTestimonialUsecase(repos.Testimonials),
		ProjectUC:     uc.NewProjectUsecase(repos.Projects),
		OrderUC:       uc.NewOrderUsecase(repos.Orders, repos.Products, cfg.DeliveryFee),
		PaymentUC:     uc.NewPaymentUsecase(repos.Payments, repos.Orders, repos.Products, paymentMailer),
		DashboardUC:   dashboardUC,
		AuthUC:        uc.NewAuthUsecase(repos.Admins, jwtm, jwtm, idVerifier),
	}
	if inf.GCS != nil {
		c.MediaUC = uc.NewMediaUsecase(gcso.NewMediaRepositoryGCS(inf.GCS, cfg.MediaBucket, cfg.MediaPublicBaseURL))
	}
	return c, nil
}

// RouterDeps は httpin.NewRouter に渡す依存
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		ProductUC:           c.ProductUC,
		CategoryUC:          c.CategoryUC,
		ContactUC:           c.ContactUC,
		TestimonialUC:       c.TestimonialUC,
		ProjectUC:           c.ProjectUC,
		OrderUC:             c.OrderUC,
		PaymentUC:           c.PaymentUC,
		DashboardUC:         c.DashboardUC,
		AuthUC:              c.AuthUC,
		MediaUC:             c.MediaUC,
		StripeWebhookSecret: c.Config.StripeWebhookSecret,
		AllowedOrigins:      c.Config.AllowedOrigins,
		Metrics:             c.Metrics,
	}
}

func (c *Container) Router() http.Handler {
	return httpin.NewRouter(c.RouterDeps())
}

func (c *Container) Close(ctx context.Context) {
	if c == nil {
		return
	}
	_ = c.Infra.Close(ctx)
}
