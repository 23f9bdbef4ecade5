package pdf

import (
	"os"
	"testing"

	"github.com/a3tai/ekho-renamer/internal/pdf/pdftest"
)

const certMarkerLiteral = pdftest.CertMarker

// writePDF stores a generated PDF under dir and returns its path.
func writePDF(t *testing.T, dir, name string, pages ...string) string {
	t.Helper()
	return pdftest.Write(t, dir, name, pages...)
}

// writeFile stores arbitrary content at path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
