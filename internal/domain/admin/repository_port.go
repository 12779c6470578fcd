// internal/domain/admin/repository_port.go
package admin

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	Count(ctx context.Context) (int, error)
	// Upsert は username をキーに作成または上書きする（シード用）
	Upsert(ctx context.Context, a Admin) (Admin, error)
}
