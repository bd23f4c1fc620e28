package application

import (
	"bytes"
	"context"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-article-cms/internal/domain/apperror"
)

// ObjectUploader stores a blob and returns its public URL; *helpers.GCSUploader implements it.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaService accepts image uploads for use inside articles.
type MediaService struct {
	Uploader ObjectUploader
	MaxBytes int64
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewMediaService(up ObjectUploader, maxBytes int64, logger *logrus.Logger) *MediaService {
	return &MediaService{Uploader: up, MaxBytes: maxBytes, Logger: logger, now: time.Now}
}

type UploadResult struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// UploadImage sniffs the content type from the bytes, not the client-declared header.
func (s *MediaService) UploadImage(ctx context.Context, caller string, r io.Reader, size int64) (*UploadResult, error) {
	if s.Uploader == nil {
		return nil, &apperror.Error{Kind: apperror.KindInternal, Message: "uploads are not configured"}
	}
	if size > s.MaxBytes {
		return nil, apperror.Validation(map[string]string{"image": "file too large (max " + strconv.FormatInt(s.MaxBytes>>20, 10) + "MB)"})
	}

	buf, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return nil, apperror.Validation(map[string]string{"image": "could not read file"})
	}
	if int64(len(buf)) > s.MaxBytes {
		return nil, apperror.Validation(map[string]string{"image": "file too large (max " + strconv.FormatInt(s.MaxBytes>>20, 10) + "MB)"})
	}
	if len(buf) == 0 {
		return nil, apperror.Validation(map[string]string{"image": "no file uploaded"})
	}

	mt := mimetype.Detect(buf)
	ext, ok := allowedImageTypes[mt.String()]
	if !ok {
		return nil, apperror.Validation(map[string]string{"image": "unsupported file type, use JPG, PNG, GIF or WebP"})
	}

	filename := "image-" + strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + uuid.NewString() + ext
	url, err := s.Uploader.Upload(ctx, path.Join("uploads", filename), mt.String(), bytes.NewReader(buf))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", caller).Error("image upload failed")
		}
		return nil, apperror.StoreUnavailable(err)
	}
	return &UploadResult{ImageURL: url, Filename: filename}, nil
}
