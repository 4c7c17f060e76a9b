package papis

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// InfoFile is the name of the papis document metadata file.
const InfoFile = "info.yaml"

// Ensure Scanner implements the interface.
var _ driven.LibraryScanner = (*Scanner)(nil)

// Scanner reads documents from papis library directories.
type Scanner struct {
	libraries []string
}

// NewScanner creates a scanner for the given library directories.
func NewScanner(libraries ...string) *Scanner {
	return &Scanner{libraries: libraries}
}

// Scan returns every document found in the libraries, library by library.
// Documents with unreadable info.yaml files are skipped. Unavailable
// libraries are skipped too; Scan fails only when none could be read.
func (s *Scanner) Scan(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	var lastErr error
	scanned := 0

	for _, lib := range s.libraries {
		found, err := s.scanLibrary(ctx, lib)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			logger.Warn("Skipping library %s: %v", lib, err)
			lastErr = err
			continue
		}
		docs = append(docs, found...)
		scanned++
		logger.Debug("Scanned library %s", lib)
	}

	if scanned == 0 && lastErr != nil {
		return nil, lastErr
	}
	return docs, nil
}

func (s *Scanner) scanLibrary(ctx context.Context, lib string) ([]domain.Document, error) {
	info, err := os.Stat(lib)
	if err != nil {
		return nil, fmt.Errorf("library %s: %w: %w", lib, domain.ErrLibraryUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library %s: not a directory: %w", lib, domain.ErrLibraryUnavailable)
	}

	var docs []domain.Document
	err = filepath.WalkDir(lib, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == lib {
				return fmt.Errorf("%w: %w", domain.ErrLibraryUnavailable, walkErr)
			}
			logger.Warn("Skipping %s: %v", path, walkErr)
			return nil
		}
		if d.IsDir() {
			if path != lib && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != InfoFile {
			return nil
		}

		doc, err := ReadDocument(path)
		if err != nil {
			logger.Warn("Skipping document %s: %v", filepath.Dir(path), err)
			return nil
		}
		docs = append(docs, *doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan library %s: %w", lib, err)
	}
	return docs, nil
}

// ReadDocument parses the info.yaml file at path.
func ReadDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", InfoFile, err)
	}

	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", InfoFile, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("parsing %s: empty document: %w", InfoFile, domain.ErrInvalidInput)
	}

	for k, v := range fields {
		fields[k] = normalize(v)
	}

	folder := filepath.Dir(path)
	doc := &domain.Document{
		ID:     asString(fields[domain.FieldPapisID]),
		Title:  asString(fields[domain.FieldTitle]),
		Files:  resolveFiles(folder, fields[domain.FieldFiles]),
		Path:   folder,
		Fields: fields,
	}
	if doc.ID == "" {
		doc.ID = FallbackID(folder)
	}
	if v, ok := fields[domain.FieldAbstract]; ok && v != nil {
		abstract := asString(v)
		doc.Abstract = &abstract
	}

	for _, key := range []string{domain.FieldPapisID, domain.FieldTitle, domain.FieldAbstract, domain.FieldFiles} {
		delete(fields, key)
	}

	if info, err := os.Stat(path); err == nil {
		doc.UpdatedAt = info.ModTime()
	}

	return doc, nil
}

// FallbackID derives a stable identifier for documents without papis_id.
func FallbackID(folder string) string {
	abs, err := filepath.Abs(folder)
	if err != nil {
		abs = folder
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()
}

// resolveFiles returns absolute paths for the info.yaml files entry,
// which is either a list or a single string.
func resolveFiles(folder string, v any) []string {
	var names []string
	switch val := v.(type) {
	case string:
		names = []string{val}
	case []any:
		for _, item := range val {
			if s := asString(item); s != "" {
				names = append(names, s)
			}
		}
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(folder, name)
		}
		files = append(files, name)
	}
	return files
}

// normalize converts nested YAML mappings with non-string keys into
// map[string]any so the fields stay JSON encodable.
func normalize(v any) any {
	switch val := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	default:
		return v
	}
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
