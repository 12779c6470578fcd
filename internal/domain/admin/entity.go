// internal/domain/admin/entity.go
package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// RoleAdmin はトークンの role クレームに入る唯一の権限
const RoleAdmin = "admin"

// Admin は管理者アカウント（out-of-band でシードされる）。
// PasswordHash は JSON に出さない。
type Admin struct {
	ID           string    `json:"_id"`
	ProfileImage string    `json:"profileImage"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound           = fmt.Errorf("admin: %w", common.ErrNotFound)
	ErrConflict           = fmt.Errorf("admin: %w: username already exists", common.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("admin: %w: invalid username or password", common.ErrUnauthorized)
)

// NormalizeUsername はユーザー名の比較キー（trim + 小文字）
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Credentials は POST /admin/login のボディ
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return common.Required("admin", "username")
	}
	if c.Password == "" {
		return common.Required("admin", "password")
	}
	return nil
}

// Principal は認証済みリクエストの主体（ミドルウェアが context に載せる）
type Principal struct {
	Subject string
	Role    string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
