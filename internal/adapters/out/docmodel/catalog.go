// internal/adapters/out/docmodel/catalog.go
package docmodel

import (
	"strings"
	"time"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
	projectdom "github.com/MTalha250/Varzan/internal/domain/project"
	testimonialdom "github.com/MTalha250/Varzan/internal/domain/testimonial"
)

// ========================================
// Category
// ========================================

type Category struct {
	ID        string    `firestore:"-" bson:"_id"`
	Name      string    `firestore:"name" bson:"name"`
	NameKey   string    `firestore:"nameKey" bson:"nameKey"` // 小文字化した name（一意判定用）
	Type      string    `firestore:"type" bson:"type"`
	CreatedAt time.Time `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" bson:"updatedAt"`
}

func FromCategory(c catdom.Category) Category {
	return Category{
		ID:        c.ID,
		Name:      c.Name,
		NameKey:   NameKey(c.Name),
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func (d Category) ToDomain() catdom.Category {
	return catdom.Category{
		ID:        d.ID,
		Name:      d.Name,
		Type:      catdom.Type(d.Type),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// ========================================
// Contact
// ========================================

type Contact struct {
	ID              string    `firestore:"-" bson:"_id"`
	Name            string    `firestore:"name" bson:"name"`
	Email           string    `firestore:"email" bson:"email"`
	Whatsapp        string    `firestore:"whatsapp" bson:"whatsapp"`
	Services        []string  `firestore:"services" bson:"services"`
	References      []string  `firestore:"references" bson:"references"`
	MediumOfContact string    `firestore:"mediumOfContact" bson:"mediumOfContact"`
	CreatedAt       time.Time `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" bson:"updatedAt"`
}

func FromContact(c contactdom.Contact) Contact {
	return Contact{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Whatsapp:        c.Whatsapp,
		Services:        nonNil(c.Services),
		References:      nonNil(c.References),
		MediumOfContact: c.MediumOfContact,
		CreatedAt:       c.CreatedAt.UTC(),
		UpdatedAt:       c.UpdatedAt.UTC(),
	}
}

func (d Contact) ToDomain() contactdom.Contact {
	return contactdom.Contact{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Whatsapp:        d.Whatsapp,
		Services:        nonNil(d.Services),
		References:      nonNil(d.References),
		MediumOfContact: d.MediumOfContact,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

// ========================================
// Testimonial
// ========================================

type Testimonial struct {
	ID        string    `firestore:"-" bson:"_id"`
	Image     string    `firestore:"image" bson:"image"`
	Name      string    `firestore:"name" bson:"name"`
	Email     string    `firestore:"email" bson:"email"`
	Message   string    `firestore:"message" bson:"message"`
	CreatedAt time.Time `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" bson:"updatedAt"`
}

func FromTestimonial(t testimonialdom.Testimonial) Testimonial {
	return Testimonial{
		ID:        t.ID,
		Image:     t.Image,
		Name:      t.Name,
		Email:     t.Email,
		Message:   t.Message,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func (d Testimonial) ToDomain() testimonialdom.Testimonial {
	return testimonialdom.Testimonial{
		ID:        d.ID,
		Image:     d.Image,
		Name:      d.Name,
		Email:     d.Email,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// ========================================
// Project
// ========================================

type Project struct {
	ID            string    `firestore:"-" bson:"_id"`
	Title         string    `firestore:"title" bson:"title"`
	Description   string    `firestore:"description" bson:"description"`
	DesignConcept string    `firestore:"designConcept" bson:"designConcept"`
	Category      string    `firestore:"category" bson:"category"`
	Images        []string  `firestore:"images" bson:"images"`
	CreatedAt     time.Time `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" bson:"updatedAt"`
}

func FromProject(p projectdom.Project) Project {
	return Project{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		DesignConcept: p.DesignConcept,
		Category:      p.Category,
		Images:        nonNil(p.Images),
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
}

func (d Project) ToDomain() projectdom.Project {
	return projectdom.Project{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		DesignConcept: d.DesignConcept,
		Category:      d.Category,
		Images:        nonNil(d.Images),
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// ========================================
// Admin
// ========================================

type Admin struct {
	ID           string    `firestore:"-" bson:"_id"`
	ProfileImage string    `firestore:"profileImage" bson:"profileImage"`
	Name         string    `firestore:"name" bson:"name"`
	Username     string    `firestore:"username" bson:"username"`
	PasswordHash string    `firestore:"passwordHash" bson:"passwordHash"`
	CreatedAt    time.Time `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" bson:"updatedAt"`
}

func FromAdmin(a admindom.Admin) Admin {
	return Admin{
		ID:           a.ID,
		ProfileImage: a.ProfileImage,
		Name:         a.Name,
		Username:     admindom.NormalizeUsername(a.Username),
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	}
}

func (d Admin) ToDomain() admindom.Admin {
	return admindom.Admin{
		ID:           d.ID,
		ProfileImage: d.ProfileImage,
		Name:         d.Name,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// NameKey は一意判定用の正規化名
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
