package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/scriptdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "playmap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testDoc(title string) *scriptdata.Document {
	return &scriptdata.Document{
		Data:            map[string]any{"ds:5": []any{[]any{[]any{title}}}},
		ServiceRequests: map[string]string{"Ws7gDc": "ds:5"},
	}
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.SaveDocument(ctx, "https://example/a", testDoc("first")))
	require.NoError(t, db.SaveDocument(ctx, "https://example/b", testDoc("other")))
	require.NoError(t, db.SaveDocument(ctx, "https://example/a", testDoc("second")))

	t.Run("stream in insertion order", func(t *testing.T) {
		var urls []string
		err := db.StreamDocuments(ctx, func(d Document) error {
			urls = append(urls, d.URL)
			assert.False(t, d.FetchedAt.IsZero())
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example/a", "https://example/b", "https://example/a"}, urls)
	})

	t.Run("latest wins", func(t *testing.T) {
		d, err := db.LatestDocument(ctx, "https://example/a")
		require.NoError(t, err)
		v, ok := d.Doc.Partition("Ws7gDc")
		require.True(t, ok)
		assert.Equal(t, []any{[]any{[]any{"second"}}}, v)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := db.LatestDocument(ctx, "https://example/none")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRecords(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NotEmpty(t, db.RunID())

	rec := api.Record{
		"title":     "Maps",
		"histogram": api.Histogram{1: 10, 5: 90},
		"features":  []api.Feature{{Title: "Offline"}},
	}
	require.NoError(t, db.SaveRecord(ctx, "app", "com.maps", rec))

	got, err := db.Records(ctx, db.RunID(), "app")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "com.maps", got[0].Key)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got[0].Record), &decoded))
	assert.Equal(t, "Maps", decoded["title"])
	assert.Equal(t, map[string]any{"1": 10.0, "5": 90.0}, decoded["histogram"])

	other, err := db.Records(ctx, "another-run", "app")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRecords_SameKeyKeepsEverySave(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.SaveRecord(ctx, "app", "com.maps", api.Record{"title": "Maps v1"}))
	require.NoError(t, db.SaveRecord(ctx, "app", "com.maps", api.Record{"title": "Maps v2"}))

	got, err := db.Records(ctx, db.RunID(), "app")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Contains(t, got[0].Record, "Maps v1")
	assert.Contains(t, got[1].Record, "Maps v2")
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "playmap.db")

	db, err := Open(path)
	require.NoError(t, err)
	first := db.RunID()
	require.NoError(t, db.SaveDocument(ctx, "u", testDoc("x")))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	assert.NotEqual(t, first, db.RunID())

	n := 0
	require.NoError(t, db.StreamDocuments(ctx, func(Document) error { n++; return nil }))
	assert.Equal(t, 1, n)
}
