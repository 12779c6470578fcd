// internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// batchLimit は 1 バッチあたりの書き込み件数（Firestore 上限 500 に余裕を持たせる）
const batchLimit = 400

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// readAll は q の結果をすべて decode して返す。
func readAll[T any](ctx context.Context, q firestore.Query, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	out := []T{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// countDocs は q の件数を数える（ドキュメント本体は読み捨て）。
func countDocs(ctx context.Context, q firestore.Query) (int, error) {
	it := q.Select().Documents(ctx)
	defer it.Stop()

	n := 0
	for {
		_, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// newRef は id が空なら自動採番、あれば指定 ID の参照を返す。
func newRef(col *firestore.CollectionRef, id string) *firestore.DocumentRef {
	if strings.TrimSpace(id) == "" {
		return col.NewDoc()
	}
	return col.Doc(id)
}

// stamp は作成・更新時刻の既定値を埋める。
func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

func byCreatedDesc(col *firestore.CollectionRef) firestore.Query {
	return col.OrderBy("createdAt", firestore.Desc)
}
