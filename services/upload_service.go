package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageStore persists an uploaded image and returns its public URL.
type ImageStore interface {
	Save(ctx context.Context, folder, name string, r io.Reader) (string, error)
}

// LocalImageStore writes images below Dir and serves them from BaseURL.
type LocalImageStore struct {
	Dir     string
	BaseURL string
}

func (s LocalImageStore) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + folder + "/" + name, nil
}

// UploadService validates image uploads and hands them to an ImageStore.
type UploadService struct {
	store    ImageStore
	folder   string
	maxBytes int64
}

// NewUploadService creates an UploadService accepting images up to maxMB megabytes.
func NewUploadService(store ImageStore, folder string, maxMB int) *UploadService {
	return &UploadService{store: store, folder: folder, maxBytes: int64(maxMB) << 20}
}

// MaxBytes is the largest accepted upload.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadImage stores r under a random name and returns the resulting URL.
func (s *UploadService) UploadImage(ctx context.Context, caller Caller, r io.Reader) (string, error) {
	if err := requireCaller(caller); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", BadRequest("failed to read file")
	}
	if len(data) == 0 {
		return "", BadRequest("no file uploaded")
	}
	if int64(len(data)) > s.maxBytes {
		return "", BadRequest(fmt.Sprintf("file size exceeds %dMB", s.maxBytes>>20))
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", BadRequest("only image files are allowed")
	}

	name := uuid.NewString() + mime.Extension()
	url, err := s.store.Save(ctx, s.folder, name, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return url, nil
}
