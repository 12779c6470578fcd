// internal/infra/config/config.go
package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// ストア実装の切り替え（STORE_DRIVER）
const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"
)

// SecretPrefix が付いた値は Secret Manager から解決する（例: sm://jwt-secret）
const SecretPrefix = "sm://"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port        string
	StoreDriver string

	// GCP
	GCPProjectID             string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string

	// MongoDB（STORE_DRIVER=mongo）
	MongoURI      string
	MongoDatabase string

	// メディアホスト（空ならアップロード無効）
	MediaBucket        string
	MediaPublicBaseURL string

	// 認証
	JWTSecret           string
	JWTTTL              time.Duration
	FirebaseProjectID   string
	FirebaseAuthEnabled bool

	// メール（SendGrid）。API キーが空ならメール送信なし
	SendGridAPIKey string
	SendGridFrom   string
	NotifyEmail    string

	StripeWebhookSecret string
	AllowedOrigins      []string

	// DeliveryFee は額装プリントを含む注文の配送料
	DeliveryFee decimal.Decimal
}

// SecretResolver は sm:// 参照を実値に解決する（infra/secret.Client）
type SecretResolver interface {
	Access(ctx context.Context, ref string) (string, error)
}

// LoadDotenv は .env があれば読み込む（既存の環境変数は上書きしない）。
func LoadDotenv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env load skipped: %v", err)
	}
}

// Load は環境変数を読み込み Config を返します。
func Load() (*Config, error) {
	// ベースとなる GCP プロジェクト ID
	defaultProject := getenvDefault("GCP_PROJECT_ID", "varzan-prod")

	cfg := &Config{
		Port:        getenvDefault("PORT", "8080"),
		StoreDriver: strings.ToLower(getenvDefault("STORE_DRIVER", DriverFirestore)),

		GCPProjectID:             defaultProject,
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getenvDefault("MONGODB_DATABASE", "varzan"),

		MediaBucket:        os.Getenv("MEDIA_BUCKET"),
		MediaPublicBaseURL: os.Getenv("MEDIA_PUBLIC_BASE_URL"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:   getenvDefault("SENDGRID_FROM", "orders@varzan.co"),
		NotifyEmail:    os.Getenv("NOTIFY_EMAIL"),

		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AllowedOrigins:      splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.JWTTTL, err = getenvDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FirebaseAuthEnabled, err = getenvBool("FIREBASE_AUTH_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.DeliveryFee, err = getenvDecimal("DELIVERY_FEE", decimal.Zero); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverFirestore, DriverMemory:
	case DriverMongo:
		if strings.TrimSpace(cfg.MongoURI) == "" {
			return nil, fmt.Errorf("config: MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

// ResolveSecrets は sm:// で始まる値を Secret Manager から取り出して置き換える。
// 参照が 1 つも無ければ resolver は呼ばれない（nil 可）。
func (c *Config) ResolveSecrets(ctx context.Context, r SecretResolver) error {
	fields := []struct {
		key string
		ptr *string
	}{
		{"JWT_SECRET", &c.JWTSecret},
		{"SENDGRID_API_KEY", &c.SendGridAPIKey},
		{"STRIPE_WEBHOOK_SECRET", &c.StripeWebhookSecret},
		{"MONGODB_URI", &c.MongoURI},
	}
	for _, f := range fields {
		if !IsSecretRef(*f.ptr) {
			continue
		}
		if r == nil {
			return fmt.Errorf("config: %s refers to Secret Manager but no resolver is configured", f.key)
		}
		v, err := r.Access(ctx, strings.TrimPrefix(*f.ptr, SecretPrefix))
		if err != nil {
			return fmt.Errorf("config: resolve %s: %w", f.key, err)
		}
		*f.ptr = v
	}
	return nil
}

// NeedsSecrets は sm:// 参照が残っているか
func (c *Config) NeedsSecrets() bool {
	for _, v := range []string{c.JWTSecret, c.SendGridAPIKey, c.StripeWebhookSecret, c.MongoURI} {
		if IsSecretRef(v) {
			return true
		}
	}
	return false
}

func IsSecretRef(v string) bool {
	return strings.HasPrefix(strings.TrimSpace(v), SecretPrefix)
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getenvDecimal(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("config: %s must be a non-negative number", key)
	}
	return d, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
