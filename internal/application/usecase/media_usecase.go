// internal/application/usecase/media_usecase.go
package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MTalha250/Varzan/internal/domain/common"
)

// MaxUploadBytes は 1 ファイルあたりの上限（10MB）
const MaxUploadBytes = 10 << 20

var ErrUnsupportedMedia = fmt.Errorf("media: %w: only image uploads are accepted", common.ErrValidation)

// MediaStorePort はメディアホスト（adapters/out/gcs.MediaRepositoryGCS）
type MediaStorePort interface {
	Put(ctx context.Context, objectName, contentType string, r io.Reader) (publicURL string, err error)
}

type MediaUsecase struct {
	store MediaStorePort
	now   func() time.Time
	newID func() string
}

func NewMediaUsecase(store MediaStorePort) *MediaUsecase {
	return &MediaUsecase{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Upload は画像を保存して公開 URL を返す。リトライはしない。
func (u *MediaUsecase) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, "image/") {
		return "", ErrUnsupportedMedia
	}
	return u.store.Put(ctx, u.objectName(filename), ct, r)
}

// objectName は uploads/YYYY/MM/<uuid><ext>
func (u *MediaUsecase) objectName(filename string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	if len(ext) > 6 {
		ext = ""
	}
	t := u.now().UTC()
	return fmt.Sprintf("uploads/%04d/%02d/%s%s", t.Year(), int(t.Month()), u.newID(), ext)
}
