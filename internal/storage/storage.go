// Package storage issues pre-signed upload and download URLs for applicant
// files (resumes and portfolios).
package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	// KeyPrefix is the only object prefix clients may upload to or read from.
	KeyPrefix = "applications/"

	MaxFileSize = 10 * 1024 * 1024
	URLExpiry   = 5 * time.Minute
)

var AllowedFileTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
	"image/webp",
}

var (
	ErrMissingFileInfo    = errors.New("file name, type and size are required")
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
	ErrFileTooLarge       = errors.New("file is too large")
	ErrInvalidKey         = errors.New("invalid file key")
)

// Presigner signs object requests against the backing store.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, size int64, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

type UploadRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresIn int    `json:"expiresIn"`
}

type DownloadURL struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

type Service struct {
	presigner Presigner
	clock     func() time.Time
	newID     func() string
}

func NewService(presigner Presigner) *Service {
	return &Service{
		presigner: presigner,
		clock:     time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

func (s *Service) UploadURL(ctx context.Context, req UploadRequest) (*UploadURL, error) {
	if err := ValidateUpload(req); err != nil {
		return nil, err
	}

	key := s.objectKey(req.FileName)
	url, err := s.presigner.PresignPut(ctx, key, req.FileType, req.FileSize, URLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload %s: %w", key, err)
	}

	return &UploadURL{
		UploadURL: url,
		FileKey:   key,
		ExpiresIn: int(URLExpiry / time.Second),
	}, nil
}

func (s *Service) DownloadURL(ctx context.Context, key string) (*DownloadURL, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	url, err := s.presigner.PresignGet(ctx, key, URLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download %s: %w", key, err)
	}

	return &DownloadURL{URL: url, ExpiresIn: int(URLExpiry / time.Second)}, nil
}

func ValidateUpload(req UploadRequest) error {
	if req.FileName == "" || req.FileType == "" || req.FileSize <= 0 {
		return ErrMissingFileInfo
	}
	if !slices.Contains(AllowedFileTypes, req.FileType) {
		return fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, req.FileType)
	}
	if req.FileSize > MaxFileSize {
		return fmt.Errorf("%w: max %dMB", ErrFileTooLarge, MaxFileSize/1024/1024)
	}
	return nil
}

// ValidateKey rejects keys outside KeyPrefix and any parent traversal.
func ValidateKey(key string) error {
	if key == "" || !strings.HasPrefix(key, KeyPrefix) {
		return ErrInvalidKey
	}
	if strings.Contains(key, "../") || strings.Contains(key, `..\`) {
		return ErrInvalidKey
	}
	return nil
}

// objectKey builds applications/YYYY-MM-DD/<uuid>_<unix ms>.<ext>.
func (s *Service) objectKey(fileName string) string {
	now := s.clock().UTC()
	return fmt.Sprintf("%s%s/%s_%d.%s", KeyPrefix, now.Format(time.DateOnly), s.newID(), now.UnixMilli(), extension(fileName))
}

// extension returns the lowercased text after the last dot, keeping only
// letters and digits so the key cannot escape its prefix.
func extension(fileName string) string {
	ext := fileName
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = fileName[i+1:]
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, ext)
}
