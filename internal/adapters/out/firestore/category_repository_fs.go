// internal/adapters/out/firestore/category_repository_fs.go
package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/MTalha250/Varzan/internal/adapters/out/docmodel"
	catdom "github.com/MTalha250/Varzan/internal/domain/category"
	"github.com/MTalha250/Varzan/internal/domain/common"
)

type CategoryRepositoryFS struct {
	Client *firestore.Client
}

func NewCategoryRepositoryFS(client *firestore.Client) *CategoryRepositoryFS {
	return &CategoryRepositoryFS{Client: client}
}

func (r *CategoryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("categories")
}

var _ catdom.Repository = (*CategoryRepositoryFS)(nil)

func (r *CategoryRepositoryFS) GetByID(ctx context.Context, id string) (catdom.Category, error) {
	if strings.TrimSpace(id) == "" {
		return catdom.Category{}, catdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return catdom.Category{}, catdom.ErrNotFound
		}
		return catdom.Category{}, err
	}
	return docToCategory(snap)
}

func (r *CategoryRepositoryFS) List(ctx context.Context, f catdom.Filter, page common.Page) (common.PageResult[catdom.Category], error) {
	items, err := r.ListAll(ctx, f)
	if err != nil {
		return common.PageResult[catdom.Category]{}, err
	}
	return common.Paginate(items, page), nil
}

// ListAll は name 昇順。
func (r *CategoryRepositoryFS) ListAll(ctx context.Context, f catdom.Filter) ([]catdom.Category, error) {
	q := r.col().Query
	if f.Type != "" {
		q = q.Where("type", "==", string(f.Type))
	}
	if f.Name != "" {
		q = q.Where("nameKey", "==", docmodel.NameKey(f.Name))
	}
	items, err := readAll(ctx, q, docToCategory)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (r *CategoryRepositoryFS) Count(ctx context.Context) (int, error) {
	return countDocs(ctx, r.col().Query)
}

// Create は (type, nameKey) の予約ドキュメントと同じトランザクションで作成する。
// 別カテゴリが同じキーを保持していれば ErrConflict。
func (r *CategoryRepositoryFS) Create(ctx context.Context, c catdom.Category) (catdom.Category, error) {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	ref := newRef(r.col(), c.ID)
	c.ID = ref.ID
	keyRef := r.keyRef(c.Type, c.Name)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := claimCategoryKey(tx, keyRef, c.ID); err != nil {
			return err
		}
		if err := tx.Set(keyRef, map[string]any{"categoryId": c.ID}); err != nil {
			return err
		}
		return tx.Create(ref, docmodel.FromCategory(c))
	})
	if err != nil {
		if isAlreadyExists(err) {
			return catdom.Category{}, fmt.Errorf("category %s: %w", c.ID, common.ErrConflict)
		}
		return catdom.Category{}, err
	}
	return c, nil
}

// Update はキーが変わる場合だけ新しいキーを予約し、古いキーを解放する。
func (r *CategoryRepositoryFS) Update(ctx context.Context, c catdom.Category) (catdom.Category, error) {
	ref := r.col().Doc(c.ID)
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return catdom.ErrNotFound
			}
			return err
		}
		cur, err := docToCategory(snap)
		if err != nil {
			return err
		}
		oldKey := r.keyRef(cur.Type, cur.Name)
		newKey := r.keyRef(c.Type, c.Name)
		moved := oldKey.ID != newKey.ID
		if moved {
			if err := claimCategoryKey(tx, newKey, c.ID); err != nil {
				return err
			}
		}

		stamp(&c.CreatedAt, &c.UpdatedAt)
		if moved {
			if err := tx.Delete(oldKey); err != nil {
				return err
			}
		}
		if err := tx.Set(newKey, map[string]any{"categoryId": c.ID}); err != nil {
			return err
		}
		return tx.Set(ref, docmodel.FromCategory(c))
	})
	if err != nil {
		return catdom.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepositoryFS) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	ref := r.col().Doc(id)
	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		cur, err := docToCategory(snap)
		if err != nil {
			return err
		}
		keyRef := r.keyRef(cur.Type, cur.Name)
		ksnap, err := tx.Get(keyRef)
		if err != nil && !isNotFound(err) {
			return err
		}
		if err == nil && keyOwner(ksnap) == id {
			if err := tx.Delete(keyRef); err != nil {
				return err
			}
		}
		return tx.Delete(ref)
	})
}

// keyRef は categoryKeys/{sha256(type, nameKey)}。name は "/" を含みうるのでハッシュで ID にする。
func (r *CategoryRepositoryFS) keyRef(t catdom.Type, name string) *firestore.DocumentRef {
	sum := sha256.Sum256([]byte(string(t) + "\x00" + docmodel.NameKey(name)))
	return r.Client.Collection("categoryKeys").Doc(hex.EncodeToString(sum[:]))
}

// claimCategoryKey は tx 内でキーが未使用か selfID 自身のものかを確かめる。
func claimCategoryKey(tx *firestore.Transaction, keyRef *firestore.DocumentRef, selfID string) error {
	snap, err := tx.Get(keyRef)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if keyOwner(snap) != selfID {
		return catdom.ErrConflict
	}
	return nil
}

func keyOwner(snap *firestore.DocumentSnapshot) string {
	owner, _ := snap.Data()["categoryId"].(string)
	return owner
}

func docToCategory(snap *firestore.DocumentSnapshot) (catdom.Category, error) {
	var d docmodel.Category
	if err := snap.DataTo(&d); err != nil {
		return catdom.Category{}, fmt.Errorf("decode category %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d.ToDomain(), nil
}
