// internal/domain/category/entity.go
package category

import (
	"fmt"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// Type は商品種別と同じ値域（template / print）
type Type string

const (
	TypeTemplate Type = "template"
	TypePrint    Type = "print"
)

func (t Type) Valid() bool {
	return t == TypeTemplate || t == TypePrint
}

// Category は商品カテゴリ。(name, type) で一意。
type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound    = fmt.Errorf("category: %w", common.ErrNotFound)
	ErrConflict    = fmt.Errorf("category: %w: name already exists for this type", common.ErrConflict)
	ErrInvalidType = fmt.Errorf("category: %w: type must be template or print", common.ErrValidation)
)

// Input は作成・更新時の編集可能フィールド
type Input struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = Type(strings.ToLower(strings.TrimSpace(string(in.Type))))
	return in
}

func (in Input) Validate() error {
	if in.Name == "" {
		return common.Required("category", "name")
	}
	if in.Type == "" {
		return common.Required("category", "type")
	}
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// SameKey は (name, type) の一意キーが等しいか（name は大文字小文字無視）。
func (c Category) SameKey(name string, t Type) bool {
	return strings.EqualFold(c.Name, name) && c.Type == t
}

// Filter は一覧条件
type Filter struct {
	Type Type
	Name string
}

func (f Filter) Matches(c Category) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.Name != "" && !strings.EqualFold(c.Name, f.Name) {
		return false
	}
	return true
}
