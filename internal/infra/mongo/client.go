// internal/infra/mongo/client.go
package mongoinfra

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// ClientWrapper は MongoDB クライアントと対象 DB を保持する（STORE_DRIVER=mongo）。
type ClientWrapper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewClient は uri に接続し Ping まで行う。
func NewClient(ctx context.Context, uri, database string) (*ClientWrapper, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: uri is empty")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo: database is empty")
	}

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("varzan-api").
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(cctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	cw := &ClientWrapper{Client: client, Database: client.Database(database)}
	if err := cw.Ping(cctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("[mongo] connected (database: %s)", database)
	return cw, nil
}

func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("mongo client is nil")
	}
	if err := cw.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (cw *ClientWrapper) Close(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Disconnect(ctx)
}
