package object

import (
	"context"
	"io"
	"path"
	"time"

	"resume-intake/internal/shared/util"
)

// ObjectStore archives binary objects under caller-chosen keys.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, size int64, r io.Reader) error
}

// ArchiveKey builds the key an uploaded résumé is archived under:
// resumes/YYYY/MM/DD/<id>-<sanitized name>.
func ArchiveKey(now time.Time, id, fileName string) string {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		name = "resume.pdf"
	}
	return path.Join("resumes", now.UTC().Format("2006/01/02"), id+"-"+name)
}
