// internal/domain/common/strings.go
package common

import (
	"fmt"
	"strings"
)

// Required は必須項目欠落のバリデーションエラーを組み立てる。
// 例: Required("contact", "email") => "contact: validation error: email is required"
func Required(entity, field string) error {
	return fmt.Errorf("%s: %w: %s is required", entity, ErrValidation, field)
}

// CompactStrings は各要素を trim し、空要素を除いた新しいスライスを返す。
func CompactStrings(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if t := strings.TrimSpace(x); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ContainsFold は haystack のいずれかに needle が大文字小文字無視で部分一致するか。
func ContainsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
