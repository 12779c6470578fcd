// internal/adapters/out/mail/sendgrid_wire.go
package mail

import (
	"log"
)

// Mailers は DI に渡すメール送信の実装一式
type Mailers struct {
	Payment *PaymentMailer
	Contact *ContactNotifier
}

// NewMailersWithSendGrid は SendGrid を使ったメーラーを生成します。
//
//   - apiKey   : SENDGRID_API_KEY
//   - from     : SENDGRID_FROM（送信元）
//   - notifyTo : NOTIFY_EMAIL（問い合わせ通知先。空なら通知しない）
func NewMailersWithSendGrid(apiKey, from, notifyTo string) Mailers {
	if apiKey == "" {
		log.Printf("[mail] WARN: SENDGRID_API_KEY is empty. mailers will fail to send mail.")
	}
	if from == "" {
		log.Printf("[mail] WARN: SENDGRID_FROM is empty. mailers will fail to send mail.")
	}
	if notifyTo == "" {
		log.Printf("[mail] INFO: NOTIFY_EMAIL is empty. enquiry notifications are disabled.")
	}

	client := NewSendGridClient(apiKey, "Varzan")
	return Mailers{
		Payment: NewPaymentMailer(client, from),
		Contact: NewContactNotifier(client, from, notifyTo),
	}
}
