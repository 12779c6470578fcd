package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
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
)

// In-memory repositories shared by the usecase tests.

type seq struct {
	mu sync.Mutex
	n  int
}

func (s *seq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

// ---- product ----

type fakeProducts struct {
	seq
	mu    sync.Mutex
	items map[string]productdom.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{items: map[string]productdom.Product{}}
}

func (r *fakeProducts) all() []productdom.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]productdom.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out
}

func (r *fakeProducts) GetByID(_ context.Context, id string) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProducts) List(_ context.Context, f productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	return productdom.Select(r.all(), f, page)
}

func (r *fakeProducts) ListAll(_ context.Context, f productdom.Filter) ([]productdom.Product, error) {
	out := []productdom.Product{}
	for _, p := range r.all() {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProducts) Count(ctx context.Context, f productdom.Filter) (int, error) {
	items, err := r.ListAll(ctx, f)
	return len(items), err
}

func (r *fakeProducts) DistinctCategories(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	for _, p := range r.all() {
		seen[p.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeProducts) Create(_ context.Context, p productdom.Product) (productdom.Product, error) {
	if p.ID == "" {
		p.ID = r.next("prod")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return p, nil
}

func (r *fakeProducts) Update(_ context.Context, p productdom.Product) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *fakeProducts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeProducts) RenameCategory(_ context.Context, categoryID, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, p := range r.items {
		if p.CategoryID == categoryID {
			p.Category = name
			r.items[id] = p
			n++
		}
	}
	return n, nil
}

// ---- category ----

type fakeCategories struct {
	seq
	items map[string]catdom.Category
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{items: map[string]catdom.Category{}}
}

func (r *fakeCategories) GetByID(_ context.Context, id string) (catdom.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return catdom.Category{}, catdom.ErrNotFound
	}
	return c, nil
}

func (r *fakeCategories) ListAll(_ context.Context, f catdom.Filter) ([]catdom.Category, error) {
	out := []catdom.Category{}
	for _, c := range r.items {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCategories) List(ctx context.Context, f catdom.Filter, page common.Page) (common.PageResult[catdom.Category], error) {
	all, _ := r.ListAll(ctx, f)
	return common.Paginate(all, page), nil
}

func (r *fakeCategories) Count(_ context.Context) (int, error) { return len(r.items), nil }

func (r *fakeCategories) Create(_ context.Context, c catdom.Category) (catdom.Category, error) {
	c.ID = r.next("cat")
	r.items[c.ID] = c
	return c, nil
}

func (r *fakeCategories) Update(_ context.Context, c catdom.Category) (catdom.Category, error) {
	if _, ok := r.items[c.ID]; !ok {
		return catdom.Category{}, catdom.ErrNotFound
	}
	r.items[c.ID] = c
	return c, nil
}

func (r *fakeCategories) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

// ---- order ----

type fakeOrders struct {
	seq
	mu    sync.Mutex
	items map[string]orderdom.Order
}

func newFakeOrders() *fakeOrders { return &fakeOrders{items: map[string]orderdom.Order{}} }

func (r *fakeOrders) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrders) matching(f orderdom.Filter) []orderdom.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []orderdom.Order{}
	for _, o := range r.items {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeOrders) List(_ context.Context, f orderdom.Filter, page common.Page) (common.PageResult[orderdom.Order], error) {
	return common.Paginate(r.matching(f), page), nil
}

func (r *fakeOrders) Count(_ context.Context, f orderdom.Filter) (int, error) {
	return len(r.matching(f)), nil
}

func (r *fakeOrders) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	if o.ID == "" {
		o.ID = r.next("ord")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[o.ID] = o
	return o, nil
}

func (r *fakeOrders) Update(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[o.ID]; !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	r.items[o.ID] = o
	return o, nil
}

func (r *fakeOrders) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// ---- payment ----

type fakePayments struct {
	mu    sync.Mutex
	items map[string]paymentdom.Payment
}

func newFakePayments() *fakePayments { return &fakePayments{items: map[string]paymentdom.Payment{}} }

func (r *fakePayments) GetByID(_ context.Context, id string) (paymentdom.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return paymentdom.Payment{}, paymentdom.ErrNotFound
	}
	return p, nil
}

func (r *fakePayments) all() []paymentdom.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]paymentdom.Payment, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out
}

func (r *fakePayments) List(_ context.Context, f paymentdom.Filter, page common.Page) (common.PageResult[paymentdom.Payment], error) {
	out := []paymentdom.Payment{}
	for _, p := range r.all() {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return common.Paginate(out, page), nil
}

func (r *fakePayments) Create(_ context.Context, p paymentdom.Payment) (paymentdom.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return paymentdom.Payment{}, paymentdom.ErrConflict
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *fakePayments) UpdateStatus(_ context.Context, id string, s paymentdom.Status, customerID string, md map[string]string) (paymentdom.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return paymentdom.Payment{}, paymentdom.ErrNotFound
	}
	p.Status = s
	if strings.TrimSpace(customerID) != "" {
		p.StripeCustomerID = customerID
	}
	if md != nil {
		p.Metadata = md
	}
	r.items[id] = p
	return p, nil
}

func (r *fakePayments) MarkEmailSent(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return paymentdom.ErrNotFound
	}
	if p.EmailSent {
		return paymentdom.ErrEmailAlreadySent
	}
	p.EmailSent = true
	p.EmailSentAt = &at
	r.items[id] = p
	return nil
}

func (r *fakePayments) CountByStatus(_ context.Context) (paymentdom.StatusCounts, error) {
	var c paymentdom.StatusCounts
	for _, p := range r.all() {
		c.Add(p.Status)
	}
	return c, nil
}

func (r *fakePayments) SucceededRevenue(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.all() {
		if p.Status == paymentdom.StatusSucceeded {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *fakePayments) MonthlyRevenue(_ context.Context, from time.Time) ([]dashboard.MonthlyBucket, error) {
	acc := dashboard.NewAccumulator(from)
	for _, p := range r.all() {
		if p.Status == paymentdom.StatusSucceeded {
			acc.Add(p.CreatedAt, p.Amount)
		}
	}
	return acc.Buckets(), nil
}

// ---- contact ----

type fakeContacts struct {
	seq
	items []contactdom.Contact
}

func (r *fakeContacts) GetByID(_ context.Context, id string) (contactdom.Contact, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return contactdom.Contact{}, contactdom.ErrNotFound
}

func (r *fakeContacts) List(_ context.Context, page common.Page) (common.PageResult[contactdom.Contact], error) {
	return common.Paginate(r.items, page), nil
}

func (r *fakeContacts) Count(_ context.Context) (int, error) { return len(r.items), nil }

func (r *fakeContacts) Create(_ context.Context, c contactdom.Contact) (contactdom.Contact, error) {
	c.ID = r.next("contact")
	r.items = append(r.items, c)
	return c, nil
}

// ---- admin ----

type fakeAdmins struct {
	items map[string]admindom.Admin
}

func (r *fakeAdmins) GetByID(_ context.Context, id string) (admindom.Admin, error) {
	a, ok := r.items[id]
	if !ok {
		return admindom.Admin{}, admindom.ErrNotFound
	}
	return a, nil
}

func (r *fakeAdmins) GetByUsername(_ context.Context, username string) (admindom.Admin, error) {
	for _, a := range r.items {
		if a.Username == username {
			return a, nil
		}
	}
	return admindom.Admin{}, admindom.ErrNotFound
}

func (r *fakeAdmins) Count(_ context.Context) (int, error) { return len(r.items), nil }

func (r *fakeAdmins) Upsert(_ context.Context, a admindom.Admin) (admindom.Admin, error) {
	if a.ID == "" {
		a.ID = "admin-" + a.Username
	}
	r.items[a.ID] = a
	return a, nil
}

var (
	_ productdom.Repository = (*fakeProducts)(nil)
	_ catdom.Repository     = (*fakeCategories)(nil)
	_ orderdom.Repository   = (*fakeOrders)(nil)
	_ paymentdom.Repository = (*fakePayments)(nil)
	_ contactdom.Repository = (*fakeContacts)(nil)
	_ admindom.Repository   = (*fakeAdmins)(nil)
)
