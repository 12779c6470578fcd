// cmd/seed_admin/main.go
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/juju/gnuflag"

	uc "github.com/MTalha250/Varzan/internal/application/usecase"
	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	appcfg "github.com/MTalha250/Varzan/internal/infra/config"
	"github.com/MTalha250/Varzan/internal/platform/di"
)

// 管理者アカウントを作成または上書きする（username がキー）。
//
//	go run ./cmd/seed_admin -username owner@varzan.co -name Owner
//
// パスワードは ADMIN_PASSWORD から読む（シェル履歴に残さない）。
func main() {
	var (
		username     string
		name         string
		profileImage string
	)
	fs := gnuflag.NewFlagSet("seed_admin", gnuflag.ExitOnError)
	fs.StringVar(&username, "username", "", "admin username (login id)")
	fs.StringVar(&name, "name", "", "display name")
	fs.StringVar(&profileImage, "profile-image", "", "profile image URL")
	if err := fs.Parse(true, os.Args[1:]); err != nil {
		log.Fatalf("[seed_admin] %v", err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if admindom.NormalizeUsername(username) == "" || password == "" {
		log.Fatalf("[seed_admin] -username and ADMIN_PASSWORD are required")
	}

	appcfg.LoadDotenv()
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("[seed_admin] config: %v", err)
	}
	if cfg.StoreDriver == appcfg.DriverMemory {
		log.Fatalf("[seed_admin] STORE_DRIVER=memory does not persist; use firestore or mongo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, inf, err := di.OpenRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("[seed_admin] %v", err)
	}
	defer inf.Close(context.Background())

	hash, err := uc.HashPassword(password)
	if err != nil {
		log.Fatalf("[seed_admin] hash password: %v", err)
	}
	if name == "" {
		name = username
	}
	a, err := repos.Admins.Upsert(ctx, admindom.Admin{
		Name:         name,
		Username:     username,
		ProfileImage: profileImage,
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("[seed_admin] upsert: %v", err)
	}
	log.Printf("[seed_admin] admin seeded id=%s username=%s store=%s", a.ID, a.Username, cfg.StoreDriver)
}
