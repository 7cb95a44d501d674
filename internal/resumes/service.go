package resumes

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-intake/internal/shared/metrics"
	"resume-intake/internal/shared/storage/object"
	"resume-intake/internal/shared/storage/staging"
	"resume-intake/internal/shared/telemetry"
)

// Stager writes an upload to a transient local path.
type Stager interface {
	Stage(ctx context.Context, ext string, r io.Reader) (*staging.File, error)
}

// Extractor pulls plain text out of a file on disk.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (string, error)
}

// Service contains the upload, list and update logic.
type Service struct {
	Repo      Repo
	Staging   Stager
	Extractor Extractor
	// Archive is optional; nil skips archiving.
	Archive object.ObjectStore
	Now     func() time.Time
}

// Upload validates name, stages r, extracts its text and stores a record.
// The staged file is removed before Upload returns, whatever the outcome.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (string, error) {
	if strings.TrimSpace(fileName) == "" {
		metrics.IncUploadRejected()
		return "", ErrNoSelectedFile
	}
	if !IsPDF(fileName) {
		metrics.IncUploadRejected()
		return "", ErrUnsupportedFormat
	}

	staged, err := s.Staging.Stage(ctx, ".pdf", r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStaging, err)
	}
	defer func() {
		if err := staged.Release(); err != nil {
			telemetry.Error("resumes.staging.release_failed", map[string]any{
				"path": staged.Path,
				"err":  err.Error(),
			})
		}
	}()

	started := time.Now()
	text, err := s.Extractor.ExtractFile(ctx, staged.Path)
	metrics.ObserveExtractionDuration(time.Since(started))
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Warn("resumes.extract.failed", map[string]any{
			"filename": fileName,
			"size":     staged.Size,
			"err":      err.Error(),
		})
		return "", &ExtractionError{Err: err}
	}

	now := s.now()
	record := Resume{
		Filename:  fileName,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if s.Archive != nil {
		key, err := s.archive(ctx, staged, fileName, now)
		if err != nil {
			return "", err
		}
		record.ArchiveKey = key
	}

	id, err := s.Repo.Insert(ctx, record)
	if err != nil {
		return "", err
	}

	metrics.IncUploads()
	telemetry.Info("resumes.upload.stored", map[string]any{
		"resume_id":   id,
		"filename":    fileName,
		"size":        staged.Size,
		"mime_type":   staged.MimeType,
		"text_length": len(text),
		"archive_key": record.ArchiveKey,
	})
	return id, nil
}

func (s *Service) archive(ctx context.Context, staged *staging.File, fileName string, now time.Time) (string, error) {
	key := object.ArchiveKey(now, uuid.NewString(), filepath.Base(fileName))

	f, err := staged.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchive, err)
	}
	defer f.Close()

	if err := s.Archive.Put(ctx, key, "application/pdf", staged.Size, f); err != nil {
		telemetry.Error("resumes.archive.failed", map[string]any{
			"key": key,
			"err": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return key, nil
}

// List returns every stored record.
func (s *Service) List(ctx context.Context) ([]Resume, error) {
	return s.Repo.List(ctx)
}

// Update applies patch to the record with id. An id that matches nothing is
// not an error; it is logged and reported as false.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (bool, error) {
	if patch.IsEmpty() {
		return false, nil
	}
	matched, err := s.Repo.Update(ctx, id, patch, s.now())
	if err != nil {
		return false, err
	}
	if !matched {
		telemetry.Info("resumes.update.no_match", map[string]any{"resume_id": id})
		return false, nil
	}
	metrics.IncUpdates()
	return true, nil
}

// Ping checks the backing store.
func (s *Service) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
