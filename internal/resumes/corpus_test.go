package resumes

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadJoinsTextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_backend.txt", "backend resume")
	writeFile(t, dir, "b_cloud.md", "cloud resume")
	writeFile(t, dir, "notes.json", `{"ignored": true}`)

	corpus, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if corpus != "backend resume\n\n---\n\ncloud resume" {
		t.Fatalf("unexpected corpus: %q", corpus)
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load()
	if !errors.Is(err, ErrNoResumes) {
		t.Fatalf("expected ErrNoResumes, got %v", err)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope")).Load()
	if !errors.Is(err, ErrNoResumes) {
		t.Fatalf("expected ErrNoResumes, got %v", err)
	}
}

func TestLoadSkipsBlankFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blank.txt", "   \n\t")
	writeFile(t, dir, "real.txt", "actual content")

	corpus, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if corpus != "actual content" {
		t.Fatalf("unexpected corpus: %q", corpus)
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document><w:body><w:p><w:r><w:t>First line</w:t></w:r></w:p><w:p><w:r><w:t>Second line</w:t></w:r></w:p></w:body></w:document>`
	got := stripDocxXML(raw)
	if !strings.Contains(got, "First line") || !strings.Contains(got, "Second line") {
		t.Fatalf("expected both lines, got %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected paragraph break, got %q", got)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
