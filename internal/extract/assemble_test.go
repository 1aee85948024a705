package extract

import (
	"fmt"
	"testing"

	"github.com/agentic-research/playmap/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatItem(id, title string) []any {
	return []any{[]any{id}, nil, nil, title}
}

func nestedItem(id, title string) []any {
	return []any{[]any{[]any{id}, nil, nil, title}}
}

func collection(title string, items ...any) []any {
	return []any{"header", nil, []any{items, []any{nil, int64(3), title}}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		node any
		want bool
	}{
		{"collection", collection("Top", flatItem("a", "A")), true},
		{"empty items still a collection", []any{[]any{[]any{}, []any{}}}, true},
		{"trailing pair of scalars", []any{[]any{"a", "b"}}, false},
		{"trailing triple", []any{[]any{[]any{}, []any{}, []any{}}}, false},
		{"trailing scalar", []any{"x", int64(1)}, false},
		{"empty node", []any{}, false},
		{"not an array", "banner", false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Classify(tt.node)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCollection_Title(t *testing.T) {
	c, ok := Classify(collection("Recommended for you"))
	require.True(t, ok)
	assert.Equal(t, "Recommended for you", c.Title())

	c = Collection{Meta: []any{nil, int64(2), []any{"nested"}}}
	assert.Empty(t, c.Title())
}

func TestAssembler_Assemble(t *testing.T) {
	groups := []any{
		"not a collection",
		collection("New", nestedItem("com.a", "Alpha"), flatItem("com.b", "Beta")),
		[]any{nil, []any{"only", "scalars"}},
		collection("Popular", flatItem("com.c", "Gamma")),
	}

	for _, workers := range []int{0, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			a := &Assembler{Items: itemVersions(), Workers: workers}
			got, err := a.Assemble(groups)
			require.NoError(t, err)
			require.Len(t, got, 2)

			assert.Equal(t, "New", got[0].Title)
			assert.Equal(t, []api.Record{
				{"appId": "com.a", "title": "Alpha"},
				{"appId": "com.b", "title": "Beta"},
			}, got[0].List)
			assert.Equal(t, "Popular", got[1].Title)
			assert.Equal(t, []api.Record{{"appId": "com.c", "title": "Gamma"}}, got[1].List)
		})
	}
}

func TestAssembler_PreservesOrderInParallel(t *testing.T) {
	items := make([]any, 50)
	for i := range items {
		items[i] = flatItem(fmt.Sprintf("com.app%02d", i), fmt.Sprintf("App %d", i))
	}
	a := &Assembler{Items: itemVersions(), Workers: 8}
	got, err := a.Assemble([]any{collection("All", items...)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	for i, rec := range got[0].List {
		assert.Equal(t, fmt.Sprintf("com.app%02d", i), rec["appId"])
	}
}

func TestAssembler_ItemFailure(t *testing.T) {
	v := itemVersions()
	v.Specs[1].Fields["developerId"] = api.FieldRule{Path: api.Rel(9), Transform: required}
	a := &Assembler{Items: v}
	_, err := a.Assemble([]any{collection("Broken", flatItem("com.a", ""))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 0")
}

func TestMerge(t *testing.T) {
	shared := api.Record{"appId": "com.shared", "title": "Shared"}
	groups := []api.CollectionGroup{
		{Title: "One", List: []api.Record{
			{"appId": "com.a", "title": "A"},
			shared,
		}},
		{Title: "Two", List: []api.Record{
			{"appId": "com.shared", "title": "Shared"},
			{"appId": "com.b", "title": "B"},
		}},
	}

	got := Merge(groups)
	assert.Equal(t, []api.Record{
		{"appId": "com.a", "title": "A"},
		shared,
		{"appId": "com.b", "title": "B"},
	}, got)
}

func TestMerge_Empty(t *testing.T) {
	got := Merge(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAssembler_ExtractList(t *testing.T) {
	tree := partitions{"ds:3": []any{[]any{flatItem("com.a", "A"), flatItem("com.b", "B")}}}
	a := &Assembler{Items: itemVersions()}

	got, err := a.ExtractList(tree, api.At("ds:3", 0))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "com.b", got[1]["appId"])

	got, err = a.ExtractList(tree, api.At("ds:9", 0))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = a.ExtractList(partitions{"ds:3": "text"}, api.At("ds:3"))
	assert.Error(t, err)
}
