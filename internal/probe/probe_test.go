package probe

import (
	"testing"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/scriptdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *scriptdata.Document {
	return &scriptdata.Document{Data: map[string]any{
		"ds:5": []any{[]any{"Maps", nil, []any{"Google Maps", int64(42)}}},
		"ds:3": []any{[]any{4.5, map[string]any{"hidden": "Maps"}}},
	}}
}

func TestFind(t *testing.T) {
	t.Run("strings by substring in document order", func(t *testing.T) {
		hits := Find(testDoc(), "Maps")
		require.Len(t, hits, 2)
		assert.Equal(t, "$['ds:5'][0][0]", hits[0].Path.String())
		assert.Equal(t, "$['ds:5'][0][2][0]", hits[1].Path.String())
		assert.Equal(t, "Google Maps", hits[1].Value)
	})

	t.Run("numbers by value", func(t *testing.T) {
		hits := Find(testDoc(), "42")
		require.Len(t, hits, 1)
		assert.Equal(t, api.At("ds:5", 0, 2, 1).String(), hits[0].Path.String())

		hits = Find(testDoc(), "4.5")
		require.Len(t, hits, 1)
		assert.Equal(t, "$['ds:3'][0][0]", hits[0].Path.String())
	})

	t.Run("empty needle matches nothing", func(t *testing.T) {
		assert.Empty(t, Find(testDoc(), ""))
	})
}

func TestMissing(t *testing.T) {
	spec := api.MappingSpec{Fields: map[string]api.FieldRule{
		"title":   {Path: api.At("ds:5", 0, 0)},
		"score":   {Path: api.At("ds:6", 0)},
		"summary": {Path: api.At("ds:5", 0, 9)},
	}}
	assert.Equal(t, []string{"score", "summary"}, Missing(spec, testDoc()))
}
