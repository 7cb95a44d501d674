package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildPDF renders a single-page PDF showing line with Helvetica, with a
// correct xref table so strict readers accept it.
func buildPDF(line string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", line)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExtractFileReadsText(t *testing.T) {
	path := writeTemp(t, "resume.pdf", buildPDF("Hello Resume"))

	text, err := PDF{}.ExtractFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if !strings.Contains(text, "Hello Resume") {
		t.Fatalf("expected extracted text to contain %q, got %q", "Hello Resume", text)
	}
}

func TestExtractFileRejectsGarbage(t *testing.T) {
	path := writeTemp(t, "broken.pdf", []byte("this is not a pdf at all"))

	if _, err := (PDF{}).ExtractFile(context.Background(), path); err == nil {
		t.Fatalf("expected error for non-pdf content")
	}
}

func TestExtractFileRejectsTruncatedPDF(t *testing.T) {
	full := buildPDF("cut short")
	path := writeTemp(t, "truncated.pdf", full[:len(full)/2])

	if _, err := (PDF{}).ExtractFile(context.Background(), path); err == nil {
		t.Fatalf("expected error for truncated pdf")
	}
}

func TestExtractFileMissingFile(t *testing.T) {
	if _, err := (PDF{}).ExtractFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExtractFileCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (PDF{}).ExtractFile(ctx, "unused.pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
