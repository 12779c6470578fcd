// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ClientWrapper は Firestore クライアントとその設定をラップします。
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient は Firestore クライアントを初期化します。
// opts が空の場合は ADC、FIRESTORE_EMULATOR_HOST があればエミュレータへ接続します。
func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*ClientWrapper, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore: projectID is empty")
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	if host := os.Getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
		log.Printf("[firestore] using emulator %s (project: %s)", host, projectID)
	} else {
		log.Printf("[firestore] connected (project: %s)", projectID)
	}
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping はコレクション一覧の先頭 1 件を読んで疎通を確認します。
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("firestore client is nil")
	}
	it := cw.Client.Collections(ctx)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}

// Close は Firestore クライアントをクローズします。
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
