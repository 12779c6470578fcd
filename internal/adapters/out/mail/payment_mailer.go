// internal/adapters/out/mail/payment_mailer.go
package mail

import (
	"bytes"
	"context"
	"fmt"
	htmltmpl "html/template"
	"strings"

	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
)

// PaymentMailer は決済完了時の購入確認メールを送る（usecase.PaymentMailerPort の実装）。
type PaymentMailer struct {
	client      EmailClient
	fromAddress string
}

func NewPaymentMailer(client EmailClient, fromAddress string) *PaymentMailer {
	return &PaymentMailer{client: client, fromAddress: strings.TrimSpace(fromAddress)}
}

// SendPaymentConfirmation は購入商品の一覧（テンプレートのリンク・高解像度プリント）を送る。
func (m *PaymentMailer) SendPaymentConfirmation(ctx context.Context, p paymentdom.Payment) error {
	to := strings.TrimSpace(p.CustomerEmail)
	if to == "" {
		return fmt.Errorf("payment %s: customer email is empty", p.ID)
	}
	htmlBody, err := renderConfirmationHTML(p)
	if err != nil {
		return err
	}
	return m.client.Send(ctx, Message{
		From:    m.fromAddress,
		To:      to,
		Subject: "Your Varzan purchase is confirmed",
		Text:    renderConfirmationText(p),
		HTML:    htmlBody,
	})
}

func renderConfirmationText(p paymentdom.Payment) string {
	var b strings.Builder
	name := p.CustomerName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\nThank you for your purchase. Payment %s has been received.\n\n", name, p.StripePaymentIntentID)
	for _, it := range p.Products {
		fmt.Fprintf(&b, "- %s x%d", it.Name, it.Quantity)
		if it.Size != "" {
			fmt.Fprintf(&b, " (%s", it.Size)
			if it.Format != "" {
				fmt.Fprintf(&b, ", %s", it.Format)
			}
			b.WriteString(")")
		}
		fmt.Fprintf(&b, "  %s\n", it.Price.StringFixed(2))
		if it.ProductLink != "" {
			fmt.Fprintf(&b, "  Download: %s\n", it.ProductLink)
		}
	}
	fmt.Fprintf(&b, "\nTotal: %s %s\n\nVarzan\n", p.Amount.StringFixed(2), strings.ToUpper(p.Currency))
	return b.String()
}

var confirmationHTML = htmltmpl.Must(htmltmpl.New("confirmation").Parse(`<p>Hi {{if .CustomerName}}{{.CustomerName}}{{else}}there{{end}},</p>
<p>Thank you for your purchase. Payment <code>{{.StripePaymentIntentID}}</code> has been received.</p>
<table cellpadding="6">
{{range .Products}}<tr>
<td>{{.Name}}{{if .Size}} ({{.Size}}{{if .Format}}, {{.Format}}{{end}}){{end}}</td>
<td>x{{.Quantity}}</td>
<td>{{.Price.StringFixed 2}}</td>
<td>{{if .ProductLink}}<a href="{{.ProductLink}}">Download</a>{{end}}</td>
</tr>{{end}}
</table>
<p><strong>Total: {{.Amount.StringFixed 2}} {{.Currency}}</strong></p>
<p>Varzan</p>`))

func renderConfirmationHTML(p paymentdom.Payment) (string, error) {
	var buf bytes.Buffer
	if err := confirmationHTML.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}
