// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcfg "github.com/MTalha250/Varzan/internal/infra/config"
	"github.com/MTalha250/Varzan/internal/platform/di"
)

func main() {
	ctx := context.Background()
	log.SetFlags(log.LstdFlags | log.LUTC)

	// ─────────────────────────────────────────────────────────────
	// Config: .env → 環境変数
	// ─────────────────────────────────────────────────────────────
	appcfg.LoadDotenv()
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("[boot] config: %v", err)
	}

	// ─────────────────────────────────────────────────────────────
	// DI container（失敗時は /healthz だけ返して起動は続ける）
	// ─────────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	cont, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
	} else {
		defer cont.Close(context.Background())
		mux.Handle("/", cont.Router())
		log.Printf("[boot] store=%s media=%t firebase=%t mail=%t webhook=%t",
			cfg.StoreDriver,
			cont.MediaUC != nil,
			cont.Infra.FirebaseAuth != nil,
			cfg.SendGridAPIKey != "",
			cfg.StripeWebhookSecret != "",
		)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown for Cloud Run
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[boot] server error: %v", err)
	}

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}
