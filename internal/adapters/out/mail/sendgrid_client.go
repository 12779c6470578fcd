// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message は送信 1 通分
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	// HTML が空ならテキストを <pre> で包んで送る
	HTML string
}

// EmailClient は実際の送信クライアント（SendGrid など）を抽象化した下位インターフェース
type EmailClient interface {
	Send(ctx context.Context, m Message) error
}

// SendGridClient implements EmailClient interface
type SendGridClient struct {
	apiKey   string
	fromName string
}

func NewSendGridClient(apiKey, fromName string) *SendGridClient {
	if fromName == "" {
		fromName = "Varzan"
	}
	return &SendGridClient{apiKey: apiKey, fromName: fromName}
}

// Send sends an email using SendGrid
func (c *SendGridClient) Send(ctx context.Context, m Message) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if m.From == "" {
		return fmt.Errorf("from address is empty")
	}
	if m.To == "" {
		return fmt.Errorf("to address is empty")
	}

	htmlContent := m.HTML
	if htmlContent == "" {
		htmlContent = fmt.Sprintf("<pre>%s</pre>", html.EscapeString(m.Text))
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(c.fromName, m.From),
		m.Subject,
		sgmail.NewEmail("", m.To),
		m.Text,
		htmlContent,
	)

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf(
			"sendgrid send failed: status=%d, body=%s",
			response.StatusCode,
			response.Body,
		)
	}

	log.Printf("[sendgrid] mail sent: status=%d to=%s subject=%s",
		response.StatusCode, m.To, m.Subject)

	return nil
}
