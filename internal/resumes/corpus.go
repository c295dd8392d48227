// Package resumes loads the candidate's resume corpus used as scoring
// context. Plain text and markdown are read as-is; PDF and DOCX files are
// extracted to text.
package resumes

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"hiretrack-backend/internal/shared/telemetry"
)

// ErrNoResumes is returned when the resumes directory holds no usable
// files. Operations that need scoring context must fail before touching
// the store.
var ErrNoResumes = errors.New("no resumes found")

const corpusSeparator = "\n\n---\n\n"

// Loader reads resume files from a directory.
type Loader struct {
	Dir string
}

// NewLoader constructs a Loader for the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load concatenates every readable resume in the directory, separated by a
// divider. Files that fail to extract are logged and skipped.
func (l *Loader) Load() (string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoResumes
		}
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		text, err := l.readOne(filepath.Join(l.Dir, name))
		if err != nil {
			telemetry.Error("resumes.read_failed", map[string]any{
				"file":  name,
				"error": err.Error(),
			})
			continue
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", ErrNoResumes
	}
	return strings.Join(parts, corpusSeparator), nil
}

func (l *Loader) readOne(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	case ".pdf":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return extractPDF(raw)
	case ".docx":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return extractDOCX(raw)
	default:
		return "", nil
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
