package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/papis"
	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/storage/memory"
	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func strPtr(s string) *string { return &s }

func fixtureDocs() []domain.Document {
	return []domain.Document{
		{
			ID:       "vaswani2017",
			Title:    "Attention Is All You Need",
			Path:     "/papers/vaswani-2017",
			Files:    []string{"/papers/vaswani-2017/paper.pdf"},
			Fields:   map[string]any{"author": "Vaswani, Ashish", "year": 2017, "tags": []any{"nlp", "transformer"}},
			Abstract: strPtr("The dominant sequence transduction models..."),
		},
		{
			ID:        "lecun2015",
			Title:     "Deep Learning",
			Path:      "/papers/lecun-2015",
			Files:     []string{"/papers/lecun-2015/paper.pdf", "/papers/lecun-2015/notes.md"},
			Fields:    map[string]any{"author": "LeCun, Yann", "year": 2015, "journal": "Nature"},
			UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:     "dup",
			Title:  "100% Coverage_Report",
			Path:   "/papers/dup-a",
			Fields: map[string]any{"author": "Doe, Jane"},
		},
		{
			ID:    "dup",
			Title: "Duplicate",
			Path:  "/papers/dup-b",
		},
	}
}

func ids(docs []domain.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, fixtureDocs()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	docs, err := reopened.All(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 4)

	var versions int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestStore_All(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	t.Run("empty index", func(t *testing.T) {
		docs, err := store.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("ordered by folder path", func(t *testing.T) {
		require.NoError(t, store.Replace(ctx, fixtureDocs()))

		docs, err := store.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"dup", "dup", "lecun2015", "vaswani2017"}, ids(docs))
	})

	t.Run("round trips document data", func(t *testing.T) {
		docs, err := store.Filter(ctx, domain.FieldPapisID, "lecun2015")
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "Deep Learning", doc.Title)
		assert.Nil(t, doc.Abstract)
		assert.Equal(t, []string{"/papers/lecun-2015/paper.pdf", "/papers/lecun-2015/notes.md"}, doc.Files)
		assert.True(t, doc.UpdatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
		journal, ok := doc.Field("journal")
		assert.True(t, ok)
		assert.Equal(t, "Nature", journal)
		year, _ := doc.Field(domain.FieldYear)
		assert.Equal(t, "2015", year)
	})
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	require.NoError(t, store.Replace(ctx, fixtureDocs()))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query lists everything", "", []string{"dup", "dup", "lecun2015", "vaswani2017"}},
		{"case-insensitive title term", "DEEP", []string{"lecun2015"}},
		{"author term", "vaswani", []string{"vaswani2017"}},
		{"all terms must match", "deep attention", nil},
		{"year term", "2017", []string{"vaswani2017"}},
		{"tag term", "transformer", []string{"vaswani2017"}},
		{"folder name term", "dup-b", []string{"dup"}},
		{"field term", "journal:nature", []string{"lecun2015"}},
		{"field term and plain term", "author:lecun deep", []string{"lecun2015"}},
		{"quoted phrase", `"is all you"`, []string{"vaswani2017"}},
		{"percent is literal", "100%", []string{"dup"}},
		{"underscore is literal", "coverage_report", []string{"dup"}},
		{"underscore does not act as wildcard", "coverage_x", nil},
		{"no match", "quantum", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.Search(ctx, tt.query)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, docs)
				return
			}
			assert.Equal(t, tt.want, ids(docs))
		})
	}
}

func TestStore_Filter(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	require.NoError(t, store.Replace(ctx, fixtureDocs()))

	t.Run("papis_id is exact", func(t *testing.T) {
		docs, err := store.Filter(ctx, domain.FieldPapisID, "lecun")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("duplicate ids stay observable", func(t *testing.T) {
		docs, err := store.Filter(ctx, domain.FieldPapisID, "dup")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "/papers/dup-a", docs[0].Path)
		assert.Equal(t, "/papers/dup-b", docs[1].Path)
	})

	t.Run("other fields match substrings", func(t *testing.T) {
		docs, err := store.Filter(ctx, "author", "yann")
		require.NoError(t, err)
		assert.Equal(t, []string{"lecun2015"}, ids(docs))
	})

	t.Run("missing field", func(t *testing.T) {
		docs, err := store.Filter(ctx, "isbn", "978")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.Replace(ctx, fixtureDocs()))
	require.NoError(t, store.Replace(ctx, fixtureDocs()[:1]))

	docs, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"vaswani2017"}, ids(docs))

	require.NoError(t, store.Replace(ctx, nil))
	docs, err = store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_Replace_SkipsUnencodableFields(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	docs := []domain.Document{
		{ID: "good", Title: "Good", Path: "/papers/good"},
		{ID: "bad", Title: "Bad", Path: "/papers/bad", Fields: map[string]any{
			"notes": map[any]any{1: "first"},
		}},
	}

	require.NoError(t, store.Replace(ctx, docs))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, ids(all))
}

func TestStore_Replace_ScannedLibraryWithNestedKeys(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	lib := t.TempDir()
	for name, content := range map[string]string{
		"good": "papis_id: good\ntitle: Good\n",
		"bad":  "papis_id: bad\ntitle: Bad\nnotes: {1: first, 2: second}\n",
	} {
		dir := filepath.Join(lib, name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, papis.InfoFile), []byte(content), 0644))
	}

	docs, err := papis.NewScanner(lib).Scan(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, docs))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "good"}, ids(all))

	found, err := store.Search(ctx, "notes:second")
	require.NoError(t, err)
	assert.Equal(t, []string{"bad"}, ids(found))
}

func TestStore_Replace_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Replace(context.Background(), fixtureDocs()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Replace(ctx, nil))

	docs, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 4)
}

// The sqlite and memory indexes must agree on every query.
func TestStore_AgreesWithMemoryIndex(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	require.NoError(t, store.Replace(ctx, fixtureDocs()))
	mem := memory.NewIndex(fixtureDocs()...)

	indexes := map[string]driven.DocumentLibrary{"sqlite": store, "memory": mem}
	results := map[string][][]string{}

	for name, idx := range indexes {
		for _, q := range []string{"", "deep", "dup", "author:doe", "2015 nature", "nothing"} {
			docs, err := idx.Search(ctx, q)
			require.NoError(t, err)
			results[name] = append(results[name], ids(docs))
		}
		for _, id := range []string{"dup", "lecun2015", "missing"} {
			docs, err := idx.Filter(ctx, domain.FieldPapisID, id)
			require.NoError(t, err)
			results[name] = append(results[name], ids(docs))
		}
	}

	assert.Equal(t, results["memory"], results["sqlite"])
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
