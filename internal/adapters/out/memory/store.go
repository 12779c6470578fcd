// internal/adapters/out/memory/store.go
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// table は ID → 行のマップ。全リポジトリ共通の入れ物。
// ローカル開発（STORE_DRIVER=memory）とハンドラのテスト用で、永続化はしない。
type table[T any] struct {
	mu     sync.RWMutex
	prefix string
	seq    int
	rows   map[string]T

	// clash が設定されていれば insert / replace は同じロック内で一意キーを確かめる
	clash    func(existing, v T) bool
	clashErr error
}

func newTable[T any](prefix string) *table[T] {
	return &table[T]{prefix: prefix, rows: map[string]T{}}
}

func (t *table[T]) nextID() string {
	t.seq++
	return fmt.Sprintf("%s%06d", t.prefix, t.seq)
}

func (t *table[T]) get(id string, notFound error) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, notFound
	}
	return v, nil
}

// insert は id が空なら採番する。既存 ID は ErrConflict。
func (t *table[T]) insert(id string, build func(id string) T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == "" {
		id = t.nextID()
	}
	if _, ok := t.rows[id]; ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", id, common.ErrConflict)
	}
	v := build(id)
	if err := t.checkClash(id, v); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = v
	return v, nil
}

func (t *table[T]) replace(id string, v T, notFound error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return notFound
	}
	if err := t.checkClash(id, v); err != nil {
		return err
	}
	t.rows[id] = v
	return nil
}

// checkClash は呼び出し側でロック済みの前提。
func (t *table[T]) checkClash(id string, v T) error {
	if t.clash == nil {
		return nil
	}
	for rid, existing := range t.rows {
		if rid != id && t.clash(existing, v) {
			return t.clashErr
		}
	}
	return nil
}

func (t *table[T]) mutate(id string, notFound error, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, notFound
	}
	if err := fn(&v); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = v
	return v, nil
}

func (t *table[T]) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, id)
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// sortCreatedDesc は createdAt 降順、同時刻は ID 昇順。
func sortCreatedDesc[T any](items []T, created func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := created(items[i]), created(items[j])
		if !a.Equal(b) {
			return a.After(b)
		}
		return id(items[i]) < id(items[j])
	})
}

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}
