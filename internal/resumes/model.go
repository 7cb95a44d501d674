package resumes

import (
	"path/filepath"
	"strings"
	"time"
)

// Resume is one uploaded PDF's filename and extracted text.
type Resume struct {
	ID         string
	Filename   string
	Text       string
	ArchiveKey string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Filename *string
	Text     *string
}

// IsEmpty reports whether the patch sets nothing.
func (p Patch) IsEmpty() bool {
	return p.Filename == nil && p.Text == nil
}

// Apply returns r with the patch's fields set.
func (p Patch) Apply(r Resume) Resume {
	if p.Filename != nil {
		r.Filename = *p.Filename
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
	return r
}

// IsPDF reports whether name ends in a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
