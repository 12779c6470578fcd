// internal/adapters/out/memory/store_test.go
package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
)

func TestPaymentRepository_EmailSentOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	_, err := repo.Create(ctx, paymentdom.Payment{ID: "pi_1", Status: paymentdom.StatusPending, Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, paymentdom.Payment{ID: "pi_1"})
	assert.ErrorIs(t, err, common.ErrConflict)

	p, err := repo.UpdateStatus(ctx, "pi_1", paymentdom.StatusSucceeded, "cus_1", nil)
	require.NoError(t, err)
	assert.Equal(t, "10", p.Amount.String())
	assert.Equal(t, "cus_1", p.StripeCustomerID)

	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkEmailSent(ctx, "pi_1", at))
	assert.ErrorIs(t, repo.MarkEmailSent(ctx, "pi_1", at), paymentdom.ErrEmailAlreadySent)
	assert.ErrorIs(t, repo.MarkEmailSent(ctx, "pi_missing", at), common.ErrNotFound)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total)
	assert.Equal(t, 1, counts.Succeeded)
}

func TestProductRepository_ListSortsInStockFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, productdom.Product{Name: "old", InStock: true, CreatedAt: base})
	require.NoError(t, err)
	_, err = repo.Create(ctx, productdom.Product{Name: "sold out", InStock: false, CreatedAt: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, productdom.Product{Name: "new", InStock: true, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	res, err := repo.List(ctx, productdom.Filter{}, common.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []string{"new", "old", "sold out"},
		[]string{res.Items[0].Name, res.Items[1].Name, res.Items[2].Name})

	assert.NoError(t, repo.Delete(ctx, "missing"))
	assert.ErrorIs(t, repo.Delete(ctx, " "), productdom.ErrInvalidID)
}

func TestProductRepository_RenameCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	_, _ = repo.Create(ctx, productdom.Product{Name: "a", CategoryID: "c1", Category: "Old"})
	_, _ = repo.Create(ctx, productdom.Product{Name: "b", CategoryID: "c2", Category: "Other"})

	n, err := repo.RenameCategory(ctx, "c1", "New")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	cats, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"New", "Other"}, cats)
}

func TestAdminRepository_UpsertByUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository()

	first, err := repo.Upsert(ctx, admindom.Admin{Username: " Owner ", PasswordHash: "h1"})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, admindom.Admin{Username: "owner", PasswordHash: "h2"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)

	got, err := repo.GetByUsername(ctx, "OWNER")
	require.NoError(t, err)
	assert.Equal(t, "h2", got.PasswordHash)
}

func TestPaymentRepository_UpdateStatusKeepsFinalStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	_, err := repo.Create(ctx, paymentdom.Payment{ID: "pi_f", Status: paymentdom.StatusSucceeded, Amount: decimal.NewFromInt(25)})
	require.NoError(t, err)

	cur, err := repo.UpdateStatus(ctx, "pi_f", paymentdom.StatusPending, "cus_late", nil)
	assert.ErrorIs(t, err, paymentdom.ErrStatusFinal)
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, paymentdom.StatusSucceeded, cur.Status)
	assert.Empty(t, cur.StripeCustomerID)

	// 同じ状態の再配送は通る
	cur, err = repo.UpdateStatus(ctx, "pi_f", paymentdom.StatusSucceeded, "cus_1", nil)
	require.NoError(t, err)
	assert.Equal(t, "cus_1", cur.StripeCustomerID)

	_, err = repo.UpdateStatus(ctx, "pi_missing", paymentdom.StatusPending, "", nil)
	assert.ErrorIs(t, err, paymentdom.ErrNotFound)
}

func TestCategoryRepository_NameTypeUniqueUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(ctx, catdom.Category{Name: "Logos", Type: catdom.TypeTemplate}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, common.ErrConflict)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)

	// 型が違えば同名でもよい
	prints, err := repo.Create(ctx, catdom.Category{Name: "logos", Type: catdom.TypePrint})
	require.NoError(t, err)

	// 改名で既存キーにぶつかるのも拒否
	prints.Type = catdom.TypeTemplate
	_, err = repo.Update(ctx, prints)
	assert.ErrorIs(t, err, catdom.ErrConflict)

	// 自分自身の再保存は通る
	prints.Type = catdom.TypePrint
	prints.Name = "Logos"
	_, err = repo.Update(ctx, prints)
	require.NoError(t, err)
}
