// internal/adapters/out/mongo/catalog_repository_mongo.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
	projectdom "github.com/MTalha250/Varzan/internal/domain/project"
	testimonialdom "github.com/MTalha250/Varzan/internal/domain/testimonial"
)

// ========================================
// Category
// ========================================

type CategoryRepositoryMongo struct {
	DB *mongo.Database
}

func NewCategoryRepositoryMongo(db *mongo.Database) *CategoryRepositoryMongo {
	return &CategoryRepositoryMongo{DB: db}
}

func (r *CategoryRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("categories")
}

var _ catdom.Repository = (*CategoryRepositoryMongo)(nil)

var nameAsc = bson.D{{Key: "nameKey", Value: 1}, {Key: "_id", Value: 1}}

func categoryQuery(f catdom.Filter) bson.M {
	q := bson.M{}
	if f.Type != "" {
		q["type"] = string(f.Type)
	}
	if f.Name != "" {
		q["nameKey"] = docmodel.NameKey(f.Name)
	}
	return q
}

func (r *CategoryRepositoryMongo) GetByID(ctx context.Context, id string) (catdom.Category, error) {
	return findByID(ctx, r.col(), id, catdom.ErrNotFound, docmodel.Category.ToDomain)
}

func (r *CategoryRepositoryMongo) List(ctx context.Context, f catdom.Filter, page common.Page) (common.PageResult[catdom.Category], error) {
	return findPage(ctx, r.col(), categoryQuery(f), nameAsc, page, docmodel.Category.ToDomain)
}

func (r *CategoryRepositoryMongo) ListAll(ctx context.Context, f catdom.Filter) ([]catdom.Category, error) {
	return findAll(ctx, r.col(), categoryQuery(f), nameAsc, docmodel.Category.ToDomain)
}

func (r *CategoryRepositoryMongo) Count(ctx context.Context) (int, error) {
	n, err := r.col().CountDocuments(ctx, bson.M{})
	return int(n), err
}

// Create は (nameKey, type) の一意インデックス違反を ErrConflict として返す。
func (r *CategoryRepositoryMongo) Create(ctx context.Context, c catdom.Category) (catdom.Category, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	c.ID = newID(c.ID)
	if err := insert(ctx, r.col(), "category", c.ID, docmodel.FromCategory(c)); err != nil {
		return catdom.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepositoryMongo) Update(ctx context.Context, c catdom.Category) (catdom.Category, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	if err := replace(ctx, r.col(), "category", c.ID, docmodel.FromCategory(c), catdom.ErrNotFound); err != nil {
		return catdom.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepositoryMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col(), id)
}

// ========================================
// Contact
// ========================================

type ContactRepositoryMongo struct {
	DB *mongo.Database
}

func NewContactRepositoryMongo(db *mongo.Database) *ContactRepositoryMongo {
	return &ContactRepositoryMongo{DB: db}
}

func (r *ContactRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("contacts")
}

var _ contactdom.Repository = (*ContactRepositoryMongo)(nil)

func (r *ContactRepositoryMongo) GetByID(ctx context.Context, id string) (contactdom.Contact, error) {
	return findByID(ctx, r.col(), id, contactdom.ErrNotFound, docmodel.Contact.ToDomain)
}

func (r *ContactRepositoryMongo) List(ctx context.Context, page common.Page) (common.PageResult[contactdom.Contact], error) {
	return findPage(ctx, r.col(), bson.M{}, createdDesc, page, docmodel.Contact.ToDomain)
}

func (r *ContactRepositoryMongo) Count(ctx context.Context) (int, error) {
	n, err := r.col().CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (r *ContactRepositoryMongo) Create(ctx context.Context, c contactdom.Contact) (contactdom.Contact, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	c.ID = newID(c.ID)
	if err := insert(ctx, r.col(), "contact", c.ID, docmodel.FromContact(c)); err != nil {
		return contactdom.Contact{}, err
	}
	return c, nil
}

// ========================================
// Testimonial
// ========================================

type TestimonialRepositoryMongo struct {
	DB *mongo.Database
}

func NewTestimonialRepositoryMongo(db *mongo.Database) *TestimonialRepositoryMongo {
	return &TestimonialRepositoryMongo{DB: db}
}

func (r *TestimonialRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("testimonials")
}

var _ testimonialdom.Repository = (*TestimonialRepositoryMongo)(nil)

func (r *TestimonialRepositoryMongo) GetByID(ctx context.Context, id string) (testimonialdom.Testimonial, error) {
	return findByID(ctx, r.col(), id, testimonialdom.ErrNotFound, docmodel.Testimonial.ToDomain)
}

func (r *TestimonialRepositoryMongo) List(ctx context.Context, page common.Page) (common.PageResult[testimonialdom.Testimonial], error) {
	return findPage(ctx, r.col(), bson.M{}, createdDesc, page, docmodel.Testimonial.ToDomain)
}

func (r *TestimonialRepositoryMongo) ListAll(ctx context.Context) ([]testimonialdom.Testimonial, error) {
	return findAll(ctx, r.col(), bson.M{}, createdDesc, docmodel.Testimonial.ToDomain)
}

func (r *TestimonialRepositoryMongo) Create(ctx context.Context, t testimonialdom.Testimonial) (testimonialdom.Testimonial, error) {
	stamp(&t.CreatedAt, &t.UpdatedAt)
	t.ID = newID(t.ID)
	if err := insert(ctx, r.col(), "testimonial", t.ID, docmodel.FromTestimonial(t)); err != nil {
		return testimonialdom.Testimonial{}, err
	}
	return t, nil
}

func (r *TestimonialRepositoryMongo) Update(ctx context.Context, t testimonialdom.Testimonial) (testimonialdom.Testimonial, error) {
	stamp(&t.CreatedAt, &t.UpdatedAt)
	if err := replace(ctx, r.col(), "testimonial", t.ID, docmodel.FromTestimonial(t), testimonialdom.ErrNotFound); err != nil {
		return testimonialdom.Testimonial{}, err
	}
	return t, nil
}

func (r *TestimonialRepositoryMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col(), id)
}

// ========================================
// Project
// ========================================

type ProjectRepositoryMongo struct {
	DB *mongo.Database
}

func NewProjectRepositoryMongo(db *mongo.Database) *ProjectRepositoryMongo {
	return &ProjectRepositoryMongo{DB: db}
}

func (r *ProjectRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection("projects")
}

var _ projectdom.Repository = (*ProjectRepositoryMongo)(nil)

func (r *ProjectRepositoryMongo) GetByID(ctx context.Context, id string) (projectdom.Project, error) {
	return findByID(ctx, r.col(), id, projectdom.ErrNotFound, docmodel.Project.ToDomain)
}

func (r *ProjectRepositoryMongo) List(ctx context.Context, page common.Page) (common.PageResult[projectdom.Project], error) {
	return findPage(ctx, r.col(), bson.M{}, createdDesc, page, docmodel.Project.ToDomain)
}

func (r *ProjectRepositoryMongo) Create(ctx context.Context, p projectdom.Project) (projectdom.Project, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	p.ID = newID(p.ID)
	if err := insert(ctx, r.col(), "project", p.ID, docmodel.FromProject(p)); err != nil {
		return projectdom.Project{}, err
	}
	return p, nil
}

func (r *ProjectRepositoryMongo) Update(ctx context.Context, p projectdom.Project) (projectdom.Project, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	if err := replace(ctx, r.col(), "project", p.ID, docmodel.FromProject(p), projectdom.ErrNotFound); err != nil {
		return projectdom.Project{}, err
	}
	return p, nil
}

func (r *ProjectRepositoryMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col(), id)
}
