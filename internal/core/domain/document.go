package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Well-known papis document keys.
const (
	FieldPapisID  = "papis_id"
	FieldTitle    = "title"
	FieldAbstract = "abstract"
	FieldFiles    = "files"
	FieldAuthor   = "author"
	FieldYear     = "year"
	FieldTags     = "tags"
)

// Document represents a bibliography entry in a papis library.
// Every document lives in its own folder containing an info.yaml file.
type Document struct {
	// ID is the papis_id of the document. It is used as the search
	// result identifier on the bus.
	ID string

	// Title is the human-readable title.
	Title string

	// Abstract is the optional abstract. Nil when the entry has none.
	Abstract *string

	// Files are the absolute paths of the attached files, in info.yaml order.
	Files []string

	// Path is the document folder.
	Path string

	// Fields holds the remaining info.yaml keys (author, year, tags, ...).
	Fields map[string]any

	// UpdatedAt is the modification time of info.yaml.
	UpdatedAt time.Time
}

// HasAbstract returns true if the document carries a non-empty abstract.
func (d *Document) HasAbstract() bool {
	return d.Abstract != nil && *d.Abstract != ""
}

// FirstFile returns the first attached file.
func (d *Document) FirstFile() (string, bool) {
	if len(d.Files) == 0 {
		return "", false
	}
	return d.Files[0], true
}

// Field returns the string form of a document key.
// Lists are joined with spaces. The lookup is case-insensitive.
func (d *Document) Field(key string) (string, bool) {
	key = strings.ToLower(key)
	switch key {
	case FieldPapisID:
		return d.ID, d.ID != ""
	case FieldTitle:
		return d.Title, d.Title != ""
	case FieldAbstract:
		if d.Abstract == nil {
			return "", false
		}
		return *d.Abstract, true
	case FieldFiles:
		return strings.Join(d.Files, " "), len(d.Files) > 0
	}

	for k, v := range d.Fields {
		if strings.ToLower(k) == key {
			return stringify(v), true
		}
	}
	return "", false
}

// MatchText returns the lowercased text plain query terms are matched against:
// title, author, year, tags and the folder name.
func (d *Document) MatchText() string {
	parts := []string{d.Title}
	for _, key := range []string{FieldAuthor, FieldYear, FieldTags} {
		if v, ok := d.Field(key); ok {
			parts = append(parts, v)
		}
	}
	if d.Path != "" {
		parts = append(parts, filepath.Base(d.Path))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, " ")
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, stringify(item))
		}
		return strings.Join(items, " ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, 0, len(val))
		for _, k := range keys {
			items = append(items, stringify(val[k]))
		}
		return strings.Join(items, " ")
	default:
		return fmt.Sprint(val)
	}
}
