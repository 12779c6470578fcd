// internal/adapters/out/firestore/content_repository_fs.go
package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	"github.com/MTalha250/Varzan/internal/domain/common"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
	projectdom "github.com/MTalha250/Varzan/internal/domain/project"
	testimonialdom "github.com/MTalha250/Varzan/internal/domain/testimonial"
)

// ========================================
// Contact
// ========================================

type ContactRepositoryFS struct {
	Client *firestore.Client
}

func NewContactRepositoryFS(client *firestore.Client) *ContactRepositoryFS {
	return &ContactRepositoryFS{Client: client}
}

func (r *ContactRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("contacts")
}

var _ contactdom.Repository = (*ContactRepositoryFS)(nil)

func (r *ContactRepositoryFS) GetByID(ctx context.Context, id string) (contactdom.Contact, error) {
	if strings.TrimSpace(id) == "" {
		return contactdom.Contact{}, contactdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return contactdom.Contact{}, contactdom.ErrNotFound
		}
		return contactdom.Contact{}, err
	}
	return docToContact(snap)
}

func (r *ContactRepositoryFS) List(ctx context.Context, page common.Page) (common.PageResult[contactdom.Contact], error) {
	page = page.Normalize()
	total, err := r.Count(ctx)
	if err != nil {
		return common.PageResult[contactdom.Contact]{}, err
	}
	q := byCreatedDesc(r.col()).Offset(page.Offset()).Limit(page.PerPage)
	items, err := readAll(ctx, q, docToContact)
	if err != nil {
		return common.PageResult[contactdom.Contact]{}, err
	}
	return common.NewPageResult(items, total, page), nil
}

func (r *ContactRepositoryFS) Count(ctx context.Context) (int, error) {
	return countDocs(ctx, r.col().Query)
}

func (r *ContactRepositoryFS) Create(ctx context.Context, c contactdom.Contact) (contactdom.Contact, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	ref := newRef(r.col(), c.ID)
	c.ID = ref.ID
	if _, err := ref.Create(ctx, docmodel.FromContact(c)); err != nil {
		if isAlreadyExists(err) {
			return contactdom.Contact{}, fmt.Errorf("contact %s: %w", c.ID, common.ErrConflict)
		}
		return contactdom.Contact{}, err
	}
	return c, nil
}

func docToContact(snap *firestore.DocumentSnapshot) (contactdom.Contact, error) {
	var d docmodel.Contact
	if err := snap.DataTo(&d); err != nil {
		return contactdom.Contact{}, fmt.Errorf("decode contact %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}

// ========================================
// Testimonial
// ========================================

type TestimonialRepositoryFS struct {
	Client *firestore.Client
}

func NewTestimonialRepositoryFS(client *firestore.Client) *TestimonialRepositoryFS {
	return &TestimonialRepositoryFS{Client: client}
}

func (r *TestimonialRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("testimonials")
}

var _ testimonialdom.Repository = (*TestimonialRepositoryFS)(nil)

func (r *TestimonialRepositoryFS) GetByID(ctx context.Context, id string) (testimonialdom.Testimonial, error) {
	if strings.TrimSpace(id) == "" {
		return testimonialdom.Testimonial{}, testimonialdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return testimonialdom.Testimonial{}, testimonialdom.ErrNotFound
		}
		return testimonialdom.Testimonial{}, err
	}
	return docToTestimonial(snap)
}

func (r *TestimonialRepositoryFS) List(ctx context.Context, page common.Page) (common.PageResult[testimonialdom.Testimonial], error) {
	page = page.Normalize()
	total, err := countDocs(ctx, r.col().Query)
	if err != nil {
		return common.PageResult[testimonialdom.Testimonial]{}, err
	}
	q := byCreatedDesc(r.col()).Offset(page.Offset()).Limit(page.PerPage)
	items, err := readAll(ctx, q, docToTestimonial)
	if err != nil {
		return common.PageResult[testimonialdom.Testimonial]{}, err
	}
	return common.NewPageResult(items, total, page), nil
}

func (r *TestimonialRepositoryFS) ListAll(ctx context.Context) ([]testimonialdom.Testimonial, error) {
	return readAll(ctx, byCreatedDesc(r.col()), docToTestimonial)
}

func (r *TestimonialRepositoryFS) Create(ctx context.Context, t testimonialdom.Testimonial) (testimonialdom.Testimonial, error) {
	stamp(&t.CreatedAt, &t.UpdatedAt)
	ref := newRef(r.col(), t.ID)
	t.ID = ref.ID
	if _, err := ref.Create(ctx, docmodel.FromTestimonial(t)); err != nil {
		if isAlreadyExists(err) {
			return testimonialdom.Testimonial{}, fmt.Errorf("testimonial %s: %w", t.ID, common.ErrConflict)
		}
		return testimonialdom.Testimonial{}, err
	}
	return t, nil
}

func (r *TestimonialRepositoryFS) Update(ctx context.Context, t testimonialdom.Testimonial) (testimonialdom.Testimonial, error) {
	ref := r.col().Doc(t.ID)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return testimonialdom.Testimonial{}, testimonialdom.ErrNotFound
		}
		return testimonialdom.Testimonial{}, err
	}
	stamp(&t.CreatedAt, &t.UpdatedAt)
	if _, err := ref.Set(ctx, docmodel.FromTestimonial(t)); err != nil {
		return testimonialdom.Testimonial{}, err
	}
	return t, nil
}

func (r *TestimonialRepositoryFS) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func docToTestimonial(snap *firestore.DocumentSnapshot) (testimonialdom.Testimonial, error) {
	var d docmodel.Testimonial
	if err := snap.DataTo(&d); err != nil {
		return testimonialdom.Testimonial{}, fmt.Errorf("decode testimonial %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}

// ========================================
// Project
// ========================================

type ProjectRepositoryFS struct {
	Client *firestore.Client
}

func NewProjectRepositoryFS(client *firestore.Client) *ProjectRepositoryFS {
	return &ProjectRepositoryFS{Client: client}
}

func (r *ProjectRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("projects")
}

var _ projectdom.Repository = (*ProjectRepositoryFS)(nil)

func (r *ProjectRepositoryFS) GetByID(ctx context.Context, id string) (projectdom.Project, error) {
	if strings.TrimSpace(id) == "" {
		return projectdom.Project{}, projectdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return projectdom.Project{}, projectdom.ErrNotFound
		}
		return projectdom.Project{}, err
	}
	return docToProject(snap)
}

func (r *ProjectRepositoryFS) List(ctx context.Context, page common.Page) (common.PageResult[projectdom.Project], error) {
	page = page.Normalize()
	total, err := countDocs(ctx, r.col().Query)
	if err != nil {
		return common.PageResult[projectdom.Project]{}, err
	}
	q := byCreatedDesc(r.col()).Offset(page.Offset()).Limit(page.PerPage)
	items, err := readAll(ctx, q, docToProject)
	if err != nil {
		return common.PageResult[projectdom.Project]{}, err
	}
	return common.NewPageResult(items, total, page), nil
}

func (r *ProjectRepositoryFS) Create(ctx context.Context, p projectdom.Project) (projectdom.Project, error) {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	ref := newRef(r.col(), p.ID)
	p.ID = ref.ID
	if _, err := ref.Create(ctx, docmodel.FromProject(p)); err != nil {
		if isAlreadyExists(err) {
			return projectdom.Project{}, fmt.Errorf("project %s: %w", p.ID, common.ErrConflict)
		}
		return projectdom.Project{}, err
	}
	return p, nil
}

func (r *ProjectRepositoryFS) Update(ctx context.Context, p projectdom.Project) (projectdom.Project, error) {
	ref := r.col().Doc(p.ID)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return projectdom.Project{}, projectdom.ErrNotFound
		}
		return projectdom.Project{}, err
	}
	stamp(&p.CreatedAt, &p.UpdatedAt)
	if _, err := ref.Set(ctx, docmodel.FromProject(p)); err != nil {
		return projectdom.Project{}, err
	}
	return p, nil
}

func (r *ProjectRepositoryFS) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func docToProject(snap *firestore.DocumentSnapshot) (projectdom.Project, error) {
	var d docmodel.Project
	if err := snap.DataTo(&d); err != nil {
		return projectdom.Project{}, fmt.Errorf("decode project %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}
