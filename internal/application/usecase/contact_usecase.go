// internal/application/usecase/contact_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/MTalha250/Varzan/internal/domain/common"
	contactdom "github.com/MTalha250/Varzan/internal/domain/contact"
)

// ContactNotifierPort は新規問い合わせを運営に知らせるアウトバウンドポート。
// adapters/out/mail.ContactNotifier が実装する。
type ContactNotifierPort interface {
	NotifyContact(ctx context.Context, c contactdom.Contact) error
}

type ContactUsecase struct {
	contactRepo contactdom.Repository
	notifier    ContactNotifierPort
	now         func() time.Time
}

// NewContactUsecase: notifier は nil 可（通知なし）
func NewContactUsecase(contactRepo contactdom.Repository, notifier ContactNotifierPort) *ContactUsecase {
	return &ContactUsecase{
		contactRepo: contactRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (u *ContactUsecase) List(ctx context.Context, page common.Page) (common.PageResult[contactdom.Contact], error) {
	return u.contactRepo.List(ctx, page.Normalize())
}

func (u *ContactUsecase) GetByID(ctx context.Context, id string) (contactdom.Contact, error) {
	return u.contactRepo.GetByID(ctx, strings.TrimSpace(id))
}

// Create は検証後に保存し、通知はベストエフォートで送る（失敗してもリクエストは成功）。
func (u *ContactUsecase) Create(ctx context.Context, in contactdom.Input) (contactdom.Contact, error) {
	c, err := contactdom.New(in, u.now())
	if err != nil {
		return contactdom.Contact{}, err
	}
	created, err := u.contactRepo.Create(ctx, c)
	if err != nil {
		return contactdom.Contact{}, err
	}

	if u.notifier != nil {
		if err := u.notifier.NotifyContact(ctx, created); err != nil {
			log.Printf("[contact] notify failed id=%s: %v", created.ID, err)
		}
	}
	return created, nil
}
