// Package staging holds uploads on local disk for the duration of one request.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Area is a directory of transient upload files.
type Area struct {
	dir string
}

// File is one staged upload. Release must be called on every path.
type File struct {
	Path     string
	Size     int64
	MimeType string
}

// New creates dir if absent and returns the staging area rooted there.
func New(dir string) (*Area, error) {
	if dir == "" {
		return nil, errors.New("staging dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Area{dir: dir}, nil
}

// Dir returns the staging directory.
func (a *Area) Dir() string {
	return a.dir
}

// Stage copies r to a fresh <uuid><ext> path. The name never derives from
// the client filename, so concurrent uploads cannot collide.
func (a *Area) Stage(ctx context.Context, ext string, r io.Reader) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath := filepath.Join(a.dir, uuid.NewString()+ext)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open staging file: %w", err)
	}
	staged := &File{Path: fullPath}

	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		_ = f.Close()
		_ = staged.Release()
		return nil, fmt.Errorf("read sniff: %w", readErr)
	}
	staged.MimeType = http.DetectContentType(sniff[:n])

	if n > 0 {
		if _, err := f.Write(sniff[:n]); err != nil {
			_ = f.Close()
			_ = staged.Release()
			return nil, fmt.Errorf("write sniff: %w", err)
		}
	}
	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = staged.Release()
		return nil, fmt.Errorf("write body: %w", err)
	}
	staged.Size = int64(n) + written
	return staged, nil
}

// Open opens the staged file for reading.
func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Release removes the staged file. Removing an already removed file is not an error.
func (f *File) Release() error {
	if f == nil || f.Path == "" {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove staging file: %w", err)
	}
	return nil
}
