// internal/domain/project/entity.go
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// Project はポートフォリオ（制作実績）
type Project struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DesignConcept string    `json:"designConcept"`
	Category      string    `json:"category"`
	Images        []string  `json:"images"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

var ErrNotFound = fmt.Errorf("project: %w", common.ErrNotFound)

type Input struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	DesignConcept string   `json:"designConcept"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
}

func (in Input) Normalize() Input {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DesignConcept = strings.TrimSpace(in.DesignConcept)
	in.Category = strings.TrimSpace(in.Category)
	in.Images = common.CompactStrings(in.Images)
	return in
}

func (in Input) Validate() error {
	switch {
	case in.Title == "":
		return common.Required("project", "title")
	case in.Description == "":
		return common.Required("project", "description")
	case in.Category == "":
		return common.Required("project", "category")
	case len(in.Images) == 0:
		return common.Required("project", "images")
	}
	return nil
}

func (p *Project) Apply(in Input) {
	p.Title = in.Title
	p.Description = in.Description
	p.DesignConcept = in.DesignConcept
	p.Category = in.Category
	p.Images = in.Images
}
