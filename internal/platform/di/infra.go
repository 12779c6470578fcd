// internal/platform/di/infra.go
package di

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	mongorepo "github.com/MTalha250/Varzan/internal/adapters/out/mongo"
	appcfg "github.com/MTalha250/Varzan/internal/infra/config"
	firestoreinfra "github.com/MTalha250/Varzan/internal/infra/firestore"
	mongoinfra "github.com/MTalha250/Varzan/internal/infra/mongo"
	secretinfra "github.com/MTalha250/Varzan/internal/infra/secret"
)

// Infra は外部クライアント群（Close 管理対象）。
// ストアは STORE_DRIVER に応じて Firestore / Mongo のどちらか一方だけを持つ。
type Infra struct {
	Firestore    *firestoreinfra.ClientWrapper
	Mongo        *mongoinfra.ClientWrapper
	GCS          *storage.Client
	FirebaseAuth *firebaseauth.Client
	Secrets      *secretinfra.Client
}

// NewInfra は cfg の sm:// 参照を解決した上でクライアントを初期化する。
// ストアと GCS は strict、Firebase は best-effort（WARN を出して続行）。
func NewInfra(ctx context.Context, cfg *appcfg.Config) (*Infra, error) {
	inf := &Infra{}
	opts := clientOptions(cfg)

	// 1) Secret Manager（sm:// 参照がある場合のみ）
	if cfg.NeedsSecrets() {
		sm, err := secretinfra.NewClient(ctx, cfg.GCPProjectID, opts...)
		if err != nil {
			return nil, err
		}
		inf.Secrets = sm
		if err := cfg.ResolveSecrets(ctx, sm); err != nil {
			_ = inf.Close(ctx)
			return nil, err
		}
		log.Printf("[di.infra] secrets resolved from Secret Manager (project=%s)", cfg.GCPProjectID)
	}

	// 2) ストア
	switch cfg.StoreDriver {
	case appcfg.DriverFirestore:
		cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, opts...)
		if err != nil {
			_ = inf.Close(ctx)
			return nil, err
		}
		inf.Firestore = cw
	case appcfg.DriverMongo:
		cw, err := mongoinfra.NewClient(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			_ = inf.Close(ctx)
			return nil, err
		}
		inf.Mongo = cw
		if err := mongorepo.EnsureIndexes(ctx, cw.Database); err != nil {
			_ = inf.Close(ctx)
			return nil, fmt.Errorf("di.infra: ensure mongo indexes: %w", err)
		}
	case appcfg.DriverMemory:
		log.Printf("[di.infra] WARN: STORE_DRIVER=memory; data is not persisted")
	}

	// 3) GCS（MEDIA_BUCKET があるときだけ）
	if strings.TrimSpace(cfg.MediaBucket) != "" {
		gcs, err := storage.NewClient(ctx, opts...)
		if err != nil {
			_ = inf.Close(ctx)
			return nil, fmt.Errorf("di.infra: storage.NewClient failed: %w", err)
		}
		inf.GCS = gcs
		log.Printf("[di.infra] GCS media bucket=%s", cfg.MediaBucket)
	} else {
		log.Printf("[di.infra] MEDIA_BUCKET is empty; uploads are disabled")
	}

	// 4) Firebase Auth（任意）
	if cfg.FirebaseAuthEnabled {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
		if err != nil {
			log.Printf("[di.infra] WARN: firebase app init failed: %v", err)
		} else if client, err := app.Auth(ctx); err != nil {
			log.Printf("[di.infra] WARN: firebase auth init failed: %v", err)
		} else {
			inf.FirebaseAuth = client
			log.Printf("[di.infra] Firebase Auth initialized (project=%s)", cfg.FirebaseProjectID)
		}
	}
	return inf, nil
}

func (i *Infra) Close(ctx context.Context) error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.Mongo != nil {
		_ = i.Mongo.Close(ctx)
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.Secrets != nil {
		_ = i.Secrets.Close()
	}
	return nil
}

// clientOptions: FIRESTORE_CREDENTIALS_FILE → GOOGLE_APPLICATION_CREDENTIALS → ADC
func clientOptions(cfg *appcfg.Config) []option.ClientOption {
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	if credFile == "" {
		log.Printf("[di.infra] using Application Default Credentials")
		return nil
	}
	log.Printf("[di.infra] using credentials file %s", redactPath(credFile))
	return []option.ClientOption{option.WithCredentialsFile(credFile)}
}

// redactPath はパスの末尾セグメントだけを残す
func redactPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
