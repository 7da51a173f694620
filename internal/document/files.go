package document

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrUnsupportedFileType is returned when a file is not markdown.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrDownload is returned when a saved artifact cannot be written.
	ErrDownload = errors.New("save failed")
	// ErrClipboardUnavailable is returned when the system clipboard rejects a write.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// timestampLayout names saved artifacts, e.g. markdown-20260118_093012.md.
const timestampLayout = "20060102_150405"

// DefaultAccept lists the file name patterns treated as markdown.
var DefaultAccept = []string{"*.md", "*.markdown", "*.mdown", "*.mkd", "*.mkdn", "*.txt"}

// Files loads and saves documents.
type Files struct {
	Accept []string // doublestar patterns matched against the base name
	Dir    string   // directory for timestamped saves
	Prefix string   // file name prefix for timestamped saves

	now func() time.Time
}

// NewFiles returns Files with DefaultAccept when accept is empty.
func NewFiles(accept []string, dir, prefix string) *Files {
	if len(accept) == 0 {
		accept = DefaultAccept
	}
	if dir == "" {
		dir = "."
	}
	if prefix == "" {
		prefix = "markdown"
	}
	return &Files{Accept: accept, Dir: dir, Prefix: prefix, now: time.Now}
}

// Accepts reports whether name matches a markdown pattern, ignoring case.
func (f *Files) Accepts(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	for _, pattern := range f.Accept {
		ok, err := doublestar.Match(strings.ToLower(pattern), base)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// Load reads a markdown file. Names outside Accept and content that does not
// sniff as text fail with ErrUnsupportedFileType.
func (f *Files) Load(path string) (string, error) {
	if !f.Accepts(path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !isText(data) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Base(path))
	}
	return string(data), nil
}

func isText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	return strings.HasPrefix(http.DetectContentType(data), "text/")
}

// Save writes text to a new timestamped .md file under Dir and returns its path.
func (f *Files) Save(text string) (string, error) {
	return f.Export(".md", []byte(text))
}

// Export writes data to a new timestamped file with the given extension.
func (f *Files) Export(ext string, data []byte) (string, error) {
	name := fmt.Sprintf("%s-%s%s", f.Prefix, f.now().Format(timestampLayout), ext)
	path := filepath.Join(f.Dir, name)
	if err := f.SaveAs(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// SaveAs writes data to path, creating parent directories.
func (f *Files) SaveAs(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create dir: %w", ErrDownload, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	return nil
}
