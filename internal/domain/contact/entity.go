// internal/domain/contact/entity.go
package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// Contact は公開問い合わせフォームの送信内容（作成後は読み取り専用）
type Contact struct {
	ID              string    `json:"_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Whatsapp        string    `json:"whatsapp,omitempty"`
	Services        []string  `json:"services"`
	References      []string  `json:"references"`
	MediumOfContact string    `json:"mediumOfContact"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

var ErrNotFound = fmt.Errorf("contact: %w", common.ErrNotFound)

type Input struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Whatsapp        string   `json:"whatsapp"`
	Services        []string `json:"services"`
	References      []string `json:"references"`
	MediumOfContact string   `json:"mediumOfContact"`
}

// New は入力を正規化・検証して Contact を組み立てる。
func New(in Input, now time.Time) (Contact, error) {
	c := Contact{
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.TrimSpace(in.Email),
		Whatsapp:        strings.TrimSpace(in.Whatsapp),
		Services:        common.CompactStrings(in.Services),
		References:      common.CompactStrings(in.References),
		MediumOfContact: strings.TrimSpace(in.MediumOfContact),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	switch {
	case c.Name == "":
		return Contact{}, common.Required("contact", "name")
	case c.Email == "":
		return Contact{}, common.Required("contact", "email")
	case c.MediumOfContact == "":
		return Contact{}, common.Required("contact", "mediumOfContact")
	}
	return c, nil
}
