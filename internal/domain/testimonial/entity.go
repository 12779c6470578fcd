// internal/domain/testimonial/entity.go
package testimonial

import (
	"fmt"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

type Testimonial struct {
	ID        string    `json:"_id"`
	Image     string    `json:"image"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = fmt.Errorf("testimonial: %w", common.ErrNotFound)

type Input struct {
	Image   string `json:"image"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize は trim し、email を小文字化する。
func (in Input) Normalize() Input {
	in.Image = strings.TrimSpace(in.Image)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Message = strings.TrimSpace(in.Message)
	return in
}

func (in Input) Validate() error {
	switch {
	case in.Name == "":
		return common.Required("testimonial", "name")
	case in.Email == "":
		return common.Required("testimonial", "email")
	case in.Message == "":
		return common.Required("testimonial", "message")
	}
	return nil
}

// Apply は正規化済みの入力で編集可能フィールドを置き換える。
func (t *Testimonial) Apply(in Input) {
	t.Image = in.Image
	t.Name = in.Name
	t.Email = in.Email
	t.Message = in.Message
}
