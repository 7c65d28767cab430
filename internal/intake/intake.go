// Package intake turns a picked or dropped file path into an artifact
// reference. Only the file's name and size are looked at; the content is
// never opened.
package intake

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/decision-copilot/internal/wizard"
)

// DefaultExtensions mirrors the upload filter: CSV, Excel, JSON and PDF.
var DefaultExtensions = []string{".csv", ".xlsx", ".json", ".pdf"}

var (
	// ErrEmptyPath is returned when nothing usable was dropped.
	ErrEmptyPath = errors.New("intake: no file path given")
	// ErrUnsupportedType is returned for extensions outside the filter.
	ErrUnsupportedType = errors.New("intake: unsupported file type")
	// ErrNotAFile is returned for directories and other non-regular paths.
	ErrNotAFile = errors.New("intake: not a regular file")
)

// Filter is the accepted extension list, compared case-insensitively.
type Filter struct {
	extensions []string
}

// NewFilter normalises extensions (".CSV", "csv" → ".csv"). An empty list
// falls back to DefaultExtensions.
func NewFilter(extensions ...string) Filter {
	seen := map[string]struct{}{}
	var out []string
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	if len(out) == 0 {
		out = append(out, DefaultExtensions...)
	}
	return Filter{extensions: out}
}

// Extensions returns the accepted extensions with leading dots.
func (f Filter) Extensions() []string {
	if len(f.extensions) == 0 {
		return append([]string(nil), DefaultExtensions...)
	}
	return append([]string(nil), f.extensions...)
}

// Allows reports whether the name carries an accepted extension.
func (f Filter) Allows(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, allowed := range f.Extensions() {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Describe renders the filter for hint text, e.g. "CSV, XLSX, JSON, PDF".
func (f Filter) Describe() string {
	exts := f.Extensions()
	labels := make([]string, len(exts))
	for i, ext := range exts {
		labels[i] = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return strings.Join(labels, ", ")
}

// Resolve cleans a dropped path, applies the filter and stats the file.
func (f Filter) Resolve(raw string) (*wizard.Artifact, error) {
	path := CleanDroppedPath(raw)
	if path == "" {
		return nil, ErrEmptyPath
	}
	if !f.Allows(path) {
		return nil, fmt.Errorf("%w: %s (accepts %s)", ErrUnsupportedType, filepath.Base(path), f.Describe())
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("intake: stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	return &wizard.Artifact{Name: info.Name(), Size: info.Size()}, nil
}

// CleanDroppedPath undoes the quoting terminals apply when a file is dropped
// onto them: surrounding quotes, file:// URLs, backslash-escaped characters
// and a leading ~.
func CleanDroppedPath(raw string) string {
	path := strings.TrimSpace(raw)
	// Some terminals append a trailing space or newline per dropped file;
	// only the first file is taken.
	if i := strings.IndexAny(path, "\r\n"); i >= 0 {
		path = strings.TrimSpace(path[:i])
	}
	if len(path) >= 2 {
		first, last := path[0], path[len(path)-1]
		if (first == '\'' || first == '"') && last == first {
			path = path[1 : len(path)-1]
		}
	}
	if strings.HasPrefix(path, "file://") {
		if u, err := url.Parse(path); err == nil {
			path = u.Path
		} else {
			path = strings.TrimPrefix(path, "file://")
		}
	} else {
		path = unescapeShell(path)
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func unescapeShell(s string) string {
	if !strings.Contains(s, `\`) || filepath.Separator == '\\' {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
