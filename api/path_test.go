package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	assert.Equal(t, "$['ds:5'][0][12][5][1]", At("ds:5", 0, 12, 5, 1).String())
	assert.Equal(t, "$[0][3]", Rel(0, 3).String())
	assert.Equal(t, "$['Ws7gDc']", At("Ws7gDc").String())
	assert.Equal(t, "$", Rel().String())
}

func TestParsePath(t *testing.T) {
	t.Run("partition root", func(t *testing.T) {
		p, err := ParsePath("$['ds:5'][0][12][5][1]")
		require.NoError(t, err)
		assert.Equal(t, "ds:5", p.Root())
		assert.Equal(t, []int{0, 12, 5, 1}, p.Steps())
	})

	t.Run("relative", func(t *testing.T) {
		p, err := ParsePath("$[0][10][4][2]")
		require.NoError(t, err)
		assert.Empty(t, p.Root())
		assert.Equal(t, []int{0, 10, 4, 2}, p.Steps())
	})

	t.Run("round trip", func(t *testing.T) {
		orig := At("ds:3", 0, 1)
		p, err := ParsePath(orig.String())
		require.NoError(t, err)
		assert.Equal(t, orig.String(), p.String())
	})

	t.Run("key after index", func(t *testing.T) {
		_, err := ParsePath("$[0].name")
		assert.Error(t, err)
	})

	t.Run("wildcard rejected", func(t *testing.T) {
		_, err := ParsePath("$[*]")
		assert.Error(t, err)
	})
}

func TestPath_Child(t *testing.T) {
	base := At("ds:5", 0)
	child := base.Child(12)
	assert.Equal(t, "$['ds:5'][0]", base.String())
	assert.Equal(t, "$['ds:5'][0][12]", child.String())
}

func TestRel_NegativeStepPanics(t *testing.T) {
	assert.Panics(t, func() { Rel(0, -1) })
}

func TestRecord_With(t *testing.T) {
	r := Record{"title": "Maps"}
	r2 := r.With("appId", "com.google.maps")
	assert.Equal(t, "com.google.maps", r2.String("appId"))
	_, ok := r["appId"]
	assert.False(t, ok, "original record must not change")
}
