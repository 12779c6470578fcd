// internal/application/usecase/context.go
package usecase

import (
	"context"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
)

// usecase 層で使う context key
type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// WithPrincipal は認証ミドルウェアが検証済みの主体を注入するためのヘルパー
func WithPrincipal(ctx context.Context, p admindom.Principal) context.Context {
	if p.Subject == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext は注入済みの主体を取り出す。無ければ ok=false。
func PrincipalFromContext(ctx context.Context) (admindom.Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(admindom.Principal)
	return p, ok
}
