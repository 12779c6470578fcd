// internal/adapters/out/mail/contact_notifier.go
package mail

import (
	"context"
	"fmt"
	"strings"

	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
)

// ContactNotifier は問い合わせ受付を運営宛てに通知する（usecase.ContactNotifierPort）。
type ContactNotifier struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

func NewContactNotifier(client EmailClient, fromAddress, toAddress string) *ContactNotifier {
	return &ContactNotifier{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		toAddress:   strings.TrimSpace(toAddress),
	}
}

func (n *ContactNotifier) NotifyContact(ctx context.Context, c contactdom.Contact) error {
	if n.toAddress == "" {
		return nil
	}
	body := fmt.Sprintf(
		`New enquiry received.

Name: %s
Email: %s
WhatsApp: %s
Preferred contact: %s
Services: %s
References: %s
`,
		c.Name,
		c.Email,
		orDash(c.Whatsapp),
		c.MediumOfContact,
		orDash(strings.Join(c.Services, ", ")),
		orDash(strings.Join(c.References, ", ")),
	)
	return n.client.Send(ctx, Message{
		From:    n.fromAddress,
		To:      n.toAddress,
		Subject: fmt.Sprintf("[Varzan] New enquiry from %s", c.Name),
		Text:    body,
	})
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
