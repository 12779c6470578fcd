// internal/adapters/out/gcs/media_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

// MediaRepositoryGCS は管理画面からアップロードされた画像を保存する。
//
// バケットは uniform access + allUsers:objectViewer 前提（オブジェクト単位の ACL は付けない）。
// 返す URL は PublicBaseURL/<bucket>/<object>。CDN を前段に置く場合は PublicBaseURL に
// CDN のホストを設定し、バケット名はパスに含めない。
type MediaRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// 空なら https://storage.googleapis.com/<bucket>
	PublicBaseURL string
}

func NewMediaRepositoryGCS(client *storage.Client, bucket, publicBaseURL string) *MediaRepositoryGCS {
	return &MediaRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}
}

func (r *MediaRepositoryGCS) bucket() (*storage.BucketHandle, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("media_repository_gcs: storage client is nil")
	}
	if r.Bucket == "" {
		return nil, errors.New("media_repository_gcs: bucket is empty")
	}
	return r.Client.Bucket(r.Bucket), nil
}

// Put は objectName に body を書き込み公開 URL を返す。
func (r *MediaRepositoryGCS) Put(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	bh, err := r.bucket()
	if err != nil {
		return "", err
	}
	obj := sanitizeObjectPath(objectName)
	if obj == "" {
		return "", errors.New("media_repository_gcs: object name is empty")
	}

	w := bh.Object(obj).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("media_repository_gcs: write %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("media_repository_gcs: close %s: %w", obj, err)
	}

	u := r.PublicURL(obj)
	log.Printf("[gcs] uploaded bucket=%s object=%s", r.Bucket, obj)
	return u, nil
}

// PublicURL はオブジェクトの公開 URL を組み立てる（セグメントごとにエスケープ）。
func (r *MediaRepositoryGCS) PublicURL(objectPath string) string {
	segs := strings.Split(objectPath, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	escaped := strings.Join(segs, "/")

	if r.PublicBaseURL == "" {
		return fmt.Sprintf("%s/%s/%s", defaultPublicBaseURL, r.Bucket, escaped)
	}
	return r.PublicBaseURL + "/" + escaped
}

// sanitizeObjectPath は先頭スラッシュ・空セグメント・".." を除去する。
func sanitizeObjectPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	out := make([]string, 0, 4)
	for _, seg := range strings.Split(p, "/") {
		seg = strings.Trim(seg, " ")
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		out = append(out, seg)
	}
	return strings.Join(out, "/")
}
