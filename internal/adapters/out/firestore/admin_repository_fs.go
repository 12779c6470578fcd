// internal/adapters/out/firestore/admin_repository_fs.go
package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
)

type AdminRepositoryFS struct {
	Client *firestore.Client
}

func NewAdminRepositoryFS(client *firestore.Client) *AdminRepositoryFS {
	return &AdminRepositoryFS{Client: client}
}

func (r *AdminRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("admins")
}

var _ admindom.Repository = (*AdminRepositoryFS)(nil)

func (r *AdminRepositoryFS) GetByID(ctx context.Context, id string) (admindom.Admin, error) {
	if strings.TrimSpace(id) == "" {
		return admindom.Admin{}, admindom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return admindom.Admin{}, admindom.ErrNotFound
		}
		return admindom.Admin{}, err
	}
	return docToAdmin(snap)
}

func (r *AdminRepositoryFS) GetByUsername(ctx context.Context, username string) (admindom.Admin, error) {
	username = admindom.NormalizeUsername(username)
	if username == "" {
		return admindom.Admin{}, admindom.ErrNotFound
	}
	items, err := readAll(ctx, r.col().Where("username", "==", username).Limit(1), docToAdmin)
	if err != nil {
		return admindom.Admin{}, err
	}
	if len(items) == 0 {
		return admindom.Admin{}, admindom.ErrNotFound
	}
	return items[0], nil
}

func (r *AdminRepositoryFS) Count(ctx context.Context) (int, error) {
	return countDocs(ctx, r.col().Query)
}

// Upsert は username をキーに作成または更新する（seed 用）。
func (r *AdminRepositoryFS) Upsert(ctx context.Context, a admindom.Admin) (admindom.Admin, error) {
	a.Username = admindom.NormalizeUsername(a.Username)
	now := time.Now().UTC()

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		it := tx.Documents(r.col().Where("username", "==", a.Username).Limit(1))
		snaps, err := it.GetAll()
		if err != nil {
			return err
		}

		var ref *firestore.DocumentRef
		if len(snaps) > 0 {
			ref = snaps[0].Ref
			var cur docmodel.Admin
			if err := snaps[0].DataTo(&cur); err != nil {
				return fmt.Errorf("decode admin %s: %w", ref.ID, err)
			}
			a.CreatedAt = cur.CreatedAt
		} else {
			ref = newRef(r.col(), a.ID)
			a.CreatedAt = now
		}
		a.ID = ref.ID
		a.UpdatedAt = now
		return tx.Set(ref, docmodel.FromAdmin(a))
	})
	if err != nil {
		return admindom.Admin{}, err
	}
	return a, nil
}

func docToAdmin(snap *firestore.DocumentSnapshot) (admindom.Admin, error) {
	var d docmodel.Admin
	if err := snap.DataTo(&d); err != nil {
		return admindom.Admin{}, fmt.Errorf("decode admin %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}
