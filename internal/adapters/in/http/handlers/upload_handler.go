// internal/adapters/in/http/handlers/upload_handler.go
package handlers

import (
	"fmt"
	"io"
	"net/http"

	usecase "github.com/MTalha250/Varzan/internal/application/usecase"
	"github.com/MTalha250/Varzan/internal/domain/common"
)

type UploadHandler struct {
	uc *usecase.MediaUsecase
}

func NewUploadHandler(uc *usecase.MediaUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// POST /upload (multipart/form-data, field "file") → { url }
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(usecase.MaxUploadBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid multipart form: %v", common.ErrValidation, err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, common.Required("upload", "file"))
		return
	}
	defer file.Close()

	// Content-Type ヘッダは信用せず先頭 512 バイトから判定する
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		writeError(w, r, fmt.Errorf("upload: read file: %w", err))
		return
	}
	contentType := http.DetectContentType(head[:n])
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, r, fmt.Errorf("upload: rewind file: %w", err))
		return
	}

	url, err := h.uc.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
