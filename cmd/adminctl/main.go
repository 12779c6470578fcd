// cmd/adminctl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/juju/gnuflag"

	httpout "github.com/MTalha250/Varzan/internal/adapters/out/http"
)

const usage = `usage: adminctl [flags] <command> [command flags]

commands:
  login     -username u     ADMIN_PASSWORD から読み込み、トークンを表示
  stats                     ダッシュボード集計
  orders    [-status s] [-search q] [-from d] [-to d] [-page n] [-limit n]
  payments  [-status s] [-search q] [-from d] [-to d] [-page n] [-limit n]

flags:
`

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("adminctl: %v", err)
	}
}

func run(args []string) error {
	var (
		baseURL string
		token   string
		timeout time.Duration
	)
	fs := gnuflag.NewFlagSet("adminctl", gnuflag.ContinueOnError)
	fs.StringVar(&baseURL, "api", envDefault("VARZAN_API_URL", "http://localhost:8080"), "API base URL")
	fs.StringVar(&token, "token", os.Getenv("VARZAN_TOKEN"), "admin bearer token")
	fs.DurationVar(&timeout, "timeout", 20*time.Second, "request timeout")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(false, args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client := httpout.NewAPIClient(baseURL)

	cmd, cmdArgs := rest[0], rest[1:]
	if cmd != "login" && token == "" {
		return fmt.Errorf("%s requires -token or VARZAN_TOKEN", cmd)
	}

	switch cmd {
	case "login":
		var username string
		sub := gnuflag.NewFlagSet("login", gnuflag.ContinueOnError)
		sub.StringVar(&username, "username", "", "admin username")
		if err := sub.Parse(true, cmdArgs); err != nil {
			return err
		}
		res, err := client.Login(ctx, username, os.Getenv("ADMIN_PASSWORD"))
		if err != nil {
			return err
		}
		renderLogin(os.Stdout, res, time.Now())
		return nil

	case "stats":
		st, err := client.Dashboard(ctx, token)
		if err != nil {
			return err
		}
		renderStats(os.Stdout, st, time.Now())
		return nil

	case "orders":
		q, err := parseListQuery("orders", cmdArgs)
		if err != nil {
			return err
		}
		page, err := client.Orders(ctx, token, q)
		if err != nil {
			return err
		}
		renderOrders(os.Stdout, page)
		return nil

	case "payments":
		q, err := parseListQuery("payments", cmdArgs)
		if err != nil {
			return err
		}
		page, err := client.Payments(ctx, token, q)
		if err != nil {
			return err
		}
		renderPayments(os.Stdout, page)
		return nil
	}

	fs.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func parseListQuery(name string, args []string) (httpout.ListQuery, error) {
	var q httpout.ListQuery
	fs := gnuflag.NewFlagSet(name, gnuflag.ContinueOnError)
	fs.StringVar(&q.Status, "status", "", "status filter")
	fs.StringVar(&q.Search, "search", "", "free-text search")
	fs.StringVar(&q.DateFrom, "from", "", "created on/after (YYYY-MM-DD)")
	fs.StringVar(&q.DateTo, "to", "", "created on/before (YYYY-MM-DD)")
	fs.IntVar(&q.Page, "page", 1, "page number")
	fs.IntVar(&q.Limit, "limit", 20, "items per page")
	if err := fs.Parse(true, args); err != nil {
		return httpout.ListQuery{}, err
	}
	return q, nil
}

func envDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
