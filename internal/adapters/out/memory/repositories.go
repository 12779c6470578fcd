// internal/adapters/out/memory/repositories.go
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	productdom "github.com/MTalha250/Varzan/internal/domain/product"
	projectdom "github.com/MTalha250/Varzan/internal/domain/project"
	testimonialdom "github.com/MTalha250/Varzan/internal/domain/testimonial"
)

// ========================================
// Product
// ========================================

type ProductRepository struct{ t *table[productdom.Product] }

func NewProductRepository() *ProductRepository {
	return &ProductRepository{t: newTable[productdom.Product]("prd")}
}

var _ productdom.Repository = (*ProductRepository)(nil)

func (r *ProductRepository) GetByID(_ context.Context, id string) (productdom.Product, error) {
	if strings.TrimSpace(id) == "" {
		return productdom.Product{}, productdom.ErrInvalidID
	}
	return r.t.get(id, productdom.ErrNotFound)
}

func (r *ProductRepository) List(_ context.Context, f productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	return productdom.Select(r.t.filter(nil), f, page)
}

func (r *ProductRepository) ListAll(_ context.Context, f productdom.Filter) ([]productdom.Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	out := r.t.filter(f.Matches)
	productdom.SortForListing(out)
	return out, nil
}

func (r *ProductRepository) Count(ctx context.Context, f productdom.Filter) (int, error) {
	items, err := r.ListAll(ctx, f)
	return len(items), err
}

func (r *ProductRepository) DistinctCategories(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range r.t.filter(nil) {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepository) Create(_ context.Context, p productdom.Product) (productdom.Product, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	return r.t.insert(p.ID, func(id string) productdom.Product { p.ID = id; return p })
}

func (r *ProductRepository) Update(_ context.Context, p productdom.Product) (productdom.Product, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	return p, r.t.replace(p.ID, p, productdom.ErrNotFound)
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return productdom.ErrInvalidID
	}
	r.t.remove(id)
	return nil
}

func (r *ProductRepository) RenameCategory(_ context.Context, categoryID, name string) (int, error) {
	n := 0
	for _, p := range r.t.filter(func(p productdom.Product) bool { return p.CategoryID == categoryID }) {
		_, err := r.t.mutate(p.ID, productdom.ErrNotFound, func(cur *productdom.Product) error {
			cur.Category = name
			return nil
		})
		if err == nil {
			n++
		}
	}
	return n, nil
}

// ========================================
// Category
// ========================================

type CategoryRepository struct{ t *table[catdom.Category] }

func NewCategoryRepository() *CategoryRepository {
	t := newTable[catdom.Category]("cat")
	t.clash = func(existing, c catdom.Category) bool { return existing.SameKey(c.Name, c.Type) }
	t.clashErr = catdom.ErrConflict
	return &CategoryRepository{t: t}
}

var _ catdom.Repository = (*CategoryRepository)(nil)

func (r *CategoryRepository) GetByID(_ context.Context, id string) (catdom.Category, error) {
	return r.t.get(id, catdom.ErrNotFound)
}

func (r *CategoryRepository) List(ctx context.Context, f catdom.Filter, page common.Page) (common.PageResult[catdom.Category], error) {
	items, err := r.ListAll(ctx, f)
	if err != nil {
		return common.PageResult[catdom.Category]{}, err
	}
	return common.Paginate(items, page), nil
}

func (r *CategoryRepository) ListAll(_ context.Context, f catdom.Filter) ([]catdom.Category, error) {
	out := r.t.filter(f.Matches)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *CategoryRepository) Count(_ context.Context) (int, error) {
	return r.t.count(), nil
}

func (r *CategoryRepository) Create(_ context.Context, c catdom.Category) (catdom.Category, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return r.t.insert(c.ID, func(id string) catdom.Category { c.ID = id; return c })
}

func (r *CategoryRepository) Update(_ context.Context, c catdom.Category) (catdom.Category, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return c, r.t.replace(c.ID, c, catdom.ErrNotFound)
}

func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

// ========================================
// Contact
// ========================================

type ContactRepository struct{ t *table[contactdom.Contact] }

func NewContactRepository() *ContactRepository {
	return &ContactRepository{t: newTable[contactdom.Contact]("cnt")}
}

var _ contactdom.Repository = (*ContactRepository)(nil)

func (r *ContactRepository) GetByID(_ context.Context, id string) (contactdom.Contact, error) {
	return r.t.get(id, contactdom.ErrNotFound)
}

func (r *ContactRepository) List(_ context.Context, page common.Page) (common.PageResult[contactdom.Contact], error) {
	items := r.t.filter(nil)
	sortCreatedDesc(items, func(c contactdom.Contact) time.Time { return c.CreatedAt }, func(c contactdom.Contact) string { return c.ID })
	return common.Paginate(items, page), nil
}

func (r *ContactRepository) Count(_ context.Context) (int, error) {
	return r.t.count(), nil
}

func (r *ContactRepository) Create(_ context.Context, c contactdom.Contact) (contactdom.Contact, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return r.t.insert(c.ID, func(id string) contactdom.Contact { c.ID = id; return c })
}

// ========================================
// Testimonial
// ========================================

type TestimonialRepository struct{ t *table[testimonialdom.Testimonial] }

func NewTestimonialRepository() *TestimonialRepository {
	return &TestimonialRepository{t: newTable[testimonialdom.Testimonial]("tst")}
}

var _ testimonialdom.Repository = (*TestimonialRepository)(nil)

func (r *TestimonialRepository) GetByID(_ context.Context, id string) (testimonialdom.Testimonial, error) {
	return r.t.get(id, testimonialdom.ErrNotFound)
}

func (r *TestimonialRepository) List(ctx context.Context, page common.Page) (common.PageResult[testimonialdom.Testimonial], error) {
	items, _ := r.ListAll(ctx)
	return common.Paginate(items, page), nil
}

func (r *TestimonialRepository) ListAll(_ context.Context) ([]testimonialdom.Testimonial, error) {
	items := r.t.filter(nil)
	sortCreatedDesc(items, func(t testimonialdom.Testimonial) time.Time { return t.CreatedAt }, func(t testimonialdom.Testimonial) string { return t.ID })
	return items, nil
}

func (r *TestimonialRepository) Create(_ context.Context, t testimonialdom.Testimonial) (testimonialdom.Testimonial, error) {
	stamp(&t.CreatedAt, &t.UpdatedAt)
	return r.t.insert(t.ID, func(id string) testimonialdom.Testimonial { t.ID = id; return t })
}

func (r *TestimonialRepository) Update(_ context.Context, t testimonialdom.Testimonial) (testimonialdom.Testimonial, error) {
	stamp(&t.CreatedAt, &t.UpdatedAt)
	return t, r.t.replace(t.ID, t, testimonialdom.ErrNotFound)
}

func (r *TestimonialRepository) Delete(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

// ========================================
// Project
// ========================================

type ProjectRepository struct{ t *table[projectdom.Project] }

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{t: newTable[projectdom.Project]("prj")}
}

var _ projectdom.Repository = (*ProjectRepository)(nil)

func (r *ProjectRepository) GetByID(_ context.Context, id string) (projectdom.Project, error) {
	return r.t.get(id, projectdom.ErrNotFound)
}

func (r *ProjectRepository) List(_ context.Context, page common.Page) (common.PageResult[projectdom.Project], error) {
	items := r.t.filter(nil)
	sortCreatedDesc(items, func(p projectdom.Project) time.Time { return p.CreatedAt }, func(p projectdom.Project) string { return p.ID })
	return common.Paginate(items, page), nil
}

func (r *ProjectRepository) Create(_ context.Context, p projectdom.Project) (projectdom.Project, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	return r.t.insert(p.ID, func(id string) projectdom.Project { p.ID = id; return p })
}

func (r *ProjectRepository) Update(_ context.Context, p projectdom.Project) (projectdom.Project, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	return p, r.t.replace(p.ID, p, projectdom.ErrNotFound)
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

// ========================================
// Admin
// ========================================

type AdminRepository struct{ t *table[admindom.Admin] }

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{t: newTable[admindom.Admin]("adm")}
}

var _ admindom.Repository = (*AdminRepository)(nil)

func (r *AdminRepository) GetByID(_ context.Context, id string) (admindom.Admin, error) {
	return r.t.get(id, admindom.ErrNotFound)
}

func (r *AdminRepository) GetByUsername(_ context.Context, username string) (admindom.Admin, error) {
	username = admindom.NormalizeUsername(username)
	for _, a := range r.t.filter(func(a admindom.Admin) bool { return a.Username == username }) {
		return a, nil
	}
	return admindom.Admin{}, admindom.ErrNotFound
}

func (r *AdminRepository) Count(_ context.Context) (int, error) {
	return r.t.count(), nil
}

func (r *AdminRepository) Upsert(ctx context.Context, a admindom.Admin) (admindom.Admin, error) {
	a.Username = admindom.NormalizeUsername(a.Username)
	now := time.Now().UTC()
	if cur, err := r.GetByUsername(ctx, a.Username); err == nil {
		a.ID = cur.ID
		a.CreatedAt = cur.CreatedAt
		a.UpdatedAt = now
		return a, r.t.replace(a.ID, a, admindom.ErrNotFound)
	}
	a.CreatedAt, a.UpdatedAt = now, now
	return r.t.insert(a.ID, func(id string) admindom.Admin { a.ID = id; return a })
}

// ========================================
// Order
// ========================================

type OrderRepository struct{ t *table[orderdom.Order] }

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{t: newTable[orderdom.Order]("ord")}
}

var _ orderdom.Repository = (*OrderRepository)(nil)

func (r *OrderRepository) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	return r.t.get(id, orderdom.ErrNotFound)
}

func (r *OrderRepository) List(_ context.Context, f orderdom.Filter, page common.Page) (common.PageResult[orderdom.Order], error) {
	items := r.t.filter(f.Matches)
	sortCreatedDesc(items, func(o orderdom.Order) time.Time { return o.CreatedAt }, func(o orderdom.Order) string { return o.ID })
	return common.Paginate(items, page), nil
}

func (r *OrderRepository) Count(_ context.Context, f orderdom.Filter) (int, error) {
	return len(r.t.filter(f.Matches)), nil
}

func (r *OrderRepository) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	stamp(&o.CreatedAt, &o.UpdatedAt)
	return r.t.insert(o.ID, func(id string) orderdom.Order { o.ID = id; return o })
}

func (r *OrderRepository) Update(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	stamp(&o.CreatedAt, &o.UpdatedAt)
	return o, r.t.replace(o.ID, o, orderdom.ErrNotFound)
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

// ========================================
// Payment
// ========================================

type PaymentRepository struct{ t *table[paymentdom.Payment] }

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{t: newTable[paymentdom.Payment]("pay")}
}

var _ paymentdom.Repository = (*PaymentRepository)(nil)

func (r *PaymentRepository) GetByID(_ context.Context, id string) (paymentdom.Payment, error) {
	return r.t.get(id, paymentdom.ErrNotFound)
}

func (r *PaymentRepository) List(_ context.Context, f paymentdom.Filter, page common.Page) (common.PageResult[paymentdom.Payment], error) {
	items := r.t.filter(f.Matches)
	sortCreatedDesc(items, func(p paymentdom.Payment) time.Time { return p.CreatedAt }, func(p paymentdom.Payment) string { return p.ID })
	return common.Paginate(items, page), nil
}

func (r *PaymentRepository) Create(_ context.Context, p paymentdom.Payment) (paymentdom.Payment, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	out, err := r.t.insert(p.ID, func(id string) paymentdom.Payment { p.ID = id; return p })
	if err != nil {
		return paymentdom.Payment{}, paymentdom.ErrConflict
	}
	return out, nil
}

func (r *PaymentRepository) UpdateStatus(_ context.Context, id string, s paymentdom.Status, customerID string, metadata map[string]string) (paymentdom.Payment, error) {
	var current paymentdom.Payment
	out, err := r.t.mutate(id, paymentdom.ErrNotFound, func(p *paymentdom.Payment) error {
		if !p.Status.Accepts(s) {
			current = *p
			return paymentdom.ErrStatusFinal
		}
		p.Status = s
		if c := strings.TrimSpace(customerID); c != "" {
			p.StripeCustomerID = c
		}
		if metadata != nil {
			p.Metadata = metadata
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if errors.Is(err, paymentdom.ErrStatusFinal) {
		return current, err
	}
	return out, err
}

func (r *PaymentRepository) MarkEmailSent(_ context.Context, id string, at time.Time) error {
	_, err := r.t.mutate(id, paymentdom.ErrNotFound, func(p *paymentdom.Payment) error {
		if p.EmailSent {
			return paymentdom.ErrEmailAlreadySent
		}
		at := at.UTC()
		p.EmailSent = true
		p.EmailSentAt = &at
		p.UpdatedAt = at
		return nil
	})
	return err
}

func (r *PaymentRepository) CountByStatus(_ context.Context) (paymentdom.StatusCounts, error) {
	var c paymentdom.StatusCounts
	for _, p := range r.t.filter(nil) {
		c.Add(p.Status)
	}
	return c, nil
}

func (r *PaymentRepository) SucceededRevenue(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.t.filter(nil) {
		if p.Status == paymentdom.StatusSucceeded {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *PaymentRepository) MonthlyRevenue(_ context.Context, from time.Time) ([]dashboard.MonthlyBucket, error) {
	acc := dashboard.NewAccumulator(from)
	for _, p := range r.t.filter(nil) {
		if p.Status == paymentdom.StatusSucceeded {
			acc.Add(p.CreatedAt, p.Amount)
		}
	}
	return acc.Buckets(), nil
}

// ========================================
// Store
// ========================================

// Store はメモリ版リポジトリ一式
type Store struct {
	Products     *ProductRepository
	Categories   *CategoryRepository
	Contacts     *ContactRepository
	Testimonials *TestimonialRepository
	Projects     *ProjectRepository
	Admins       *AdminRepository
	Orders       *OrderRepository
	Payments     *PaymentRepository
}

func NewStore() *Store {
	return &Store{
		Products:     NewProductRepository(),
		Categories:   NewCategoryRepository(),
		Contacts:     NewContactRepository(),
		Testimonials: NewTestimonialRepository(),
		Projects:     NewProjectRepository(),
		Admins:       NewAdminRepository(),
		Orders:       NewOrderRepository(),
		Payments:     NewPaymentRepository(),
	}
}
