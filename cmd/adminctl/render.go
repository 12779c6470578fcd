// cmd/adminctl/render.go
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
	"github.com/shopspring/decimal"

	httpout "github.com/MTalha250/Varzan/internal/adapters/out/http"
	"github.com/MTalha250/Varzan/internal/domain/dashboard"
	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
)

func newTable() *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = 40
	t.Wrap = true
	return t
}

// money は decimal のまま小数 2 桁に丸め、整数部だけ桁区切りする。
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + s
	}
	return sign + humanize.Comma(n) + "." + frac
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func renderLogin(w io.Writer, res httpout.LoginResponse, now time.Time) {
	t := newTable()
	t.AddRow("Admin", res.Admin.Username)
	t.AddRow("Expires", res.ExpiresAt.UTC().Format(time.RFC3339)+" ("+humanize.RelTime(res.ExpiresAt, now, "ago", "from now")+")")
	t.AddRow("Token", res.Token)
	fmt.Fprintln(w, t)
}

// renderStats は件数・決済集計と 12 ヶ月分の売上（欠けた月は 0）を表示する。
func renderStats(w io.Writer, st dashboard.Stats, now time.Time) {
	t := newTable()
	t.RightAlign(1)
	t.AddRow("Products", count(st.ProductCount))
	t.AddRow("Highlighted", count(st.HighlightedProductCount))
	t.AddRow("Categories", count(st.CategoryCount))
	t.AddRow("Orders", count(st.OrderCount))
	t.AddRow("Contacts", count(st.ContactCount))
	t.AddRow("Admins", count(st.AdminCount))
	t.AddRow("", "")
	t.AddRow("Payments", count(st.TotalPayments))
	t.AddRow("  succeeded", count(st.SuccessfulPayments))
	t.AddRow("  pending", count(st.PendingPayments))
	t.AddRow("  failed", count(st.FailedPayments))
	t.AddRow("Revenue", money(st.TotalRevenue))
	fmt.Fprintln(w, t)

	m := newTable()
	m.RightAlign(1)
	m.RightAlign(2)
	m.AddRow("MONTH", "REVENUE", "PAYMENTS")
	for _, b := range dashboard.ZeroFill(st.MonthlyRevenue, now) {
		m.AddRow(fmt.Sprintf("%04d-%02d", b.ID.Year, b.ID.Month), money(b.Revenue), count(b.Count))
	}
	fmt.Fprintln(w, m)
}

func renderOrders(w io.Writer, page httpout.Page[orderdom.Order]) {
	t := newTable()
	t.AddRow("ID", "CUSTOMER", "ITEMS", "STATUS", "TOTAL", "CREATED")
	for _, o := range page.Items {
		t.AddRow(o.ID, o.Name+" <"+o.Email+">", strconv.Itoa(len(o.Items)), string(o.Status), money(o.Total), o.CreatedAt.UTC().Format(time.DateOnly))
	}
	fmt.Fprintln(w, t)
	fmt.Fprintln(w, pageFooter(page.CurrentPage, page.TotalPages, page.TotalItems))
}

func renderPayments(w io.Writer, page httpout.Page[paymentdom.Payment]) {
	t := newTable()
	t.AddRow("ID", "CUSTOMER", "STATUS", "AMOUNT", "EMAIL SENT", "CREATED")
	for _, p := range page.Items {
		t.AddRow(p.ID, p.CustomerEmail, string(p.Status), money(p.Amount)+" "+p.Currency, strconv.FormatBool(p.EmailSent), p.CreatedAt.UTC().Format(time.DateOnly))
	}
	fmt.Fprintln(w, t)
	fmt.Fprintln(w, pageFooter(page.CurrentPage, page.TotalPages, page.TotalItems))
}

func pageFooter(current, total, items int) string {
	return fmt.Sprintf("page %d/%d (%s items)", current, total, count(items))
}
