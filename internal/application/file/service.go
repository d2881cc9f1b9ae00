package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/dynamo"
	s3infra "github.com/LuWes17/infomatik-api/internal/infrastructure/s3"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
)

// presignTTL bounds how long a download link handed to a client stays valid.
const presignTTL = 15 * time.Minute

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	OwnerID     string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	// DownloadURL returns the file record plus a presigned GET link.
	DownloadURL(ctx context.Context, fileID, requesterID string, isAdmin bool) (*domain.File, string, error)
	Download(ctx context.Context, fileID, requesterID string, isAdmin bool) (io.ReadCloser, *domain.File, error)
	Delete(ctx context.Context, fileID, requesterID string, isAdmin bool) error
}

type service struct {
	s3       *s3infra.Store
	fileRepo *dynamo.FileRepo
}

func NewService(s3 *s3infra.Store, fileRepo *dynamo.FileRepo) Service {
	return &service{s3: s3, fileRepo: fileRepo}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	safeName := sanitizeFilename(input.Filename)
	fileID := id.New()
	// The ULID prefix keeps two uploads of the same filename from clobbering
	// each other.
	key := fmt.Sprintf("files/%s/%s_%s", input.OwnerID, fileID, safeName)

	contentType := input.ContentType
	if contentType == "" {
		contentType = s3infra.DetectContentType(safeName)
	}

	hasher := sha256.New()
	tee := io.TeeReader(input.Reader, hasher)
	if _, err := s.s3.Upload(ctx, key, tee, contentType); err != nil {
		return nil, err
	}

	f := &domain.File{
		FileID:      fileID,
		Key:         key,
		Name:        safeName,
		Size:        input.Size,
		ContentType: contentType,
		Hash:        hex.EncodeToString(hasher.Sum(nil)),
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.fileRepo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) DownloadURL(ctx context.Context, fileID, requesterID string, isAdmin bool) (*domain.File, string, error) {
	f, err := s.authorize(ctx, fileID, requesterID, isAdmin)
	if err != nil {
		return nil, "", err
	}
	url, err := s.s3.PresignedURL(ctx, f.Key, presignTTL)
	if err != nil {
		return nil, "", err
	}
	return f, url, nil
}

func (s *service) Download(ctx context.Context, fileID, requesterID string, isAdmin bool) (io.ReadCloser, *domain.File, error) {
	f, err := s.authorize(ctx, fileID, requesterID, isAdmin)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.s3.Download(ctx, f.Key)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

func (s *service) Delete(ctx context.Context, fileID, requesterID string, isAdmin bool) error {
	f, err := s.authorize(ctx, fileID, requesterID, isAdmin)
	if err != nil {
		return err
	}
	if err := s.s3.Delete(ctx, f.Key); err != nil {
		return err
	}
	return s.fileRepo.Delete(ctx, f.FileID)
}

func (s *service) authorize(ctx context.Context, fileID, requesterID string, isAdmin bool) (*domain.File, error) {
	f, err := s.fileRepo.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != requesterID && !isAdmin {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return f, nil
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
