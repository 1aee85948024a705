package extract

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/agentic-research/playmap/api"
	"golang.org/x/sync/errgroup"
)

// Collection is a raw group node recognised as holding a list of items.
type Collection struct {
	Items []any
	Meta  []any
}

// Classify decides whether a raw group node is a collection: its trailing
// element must be a pair of arrays (items, metadata).
func Classify(node any) (Collection, bool) {
	arr, ok := node.([]any)
	if !ok || len(arr) == 0 {
		return Collection{}, false
	}
	pair, ok := arr[len(arr)-1].([]any)
	if !ok || len(pair) != 2 {
		return Collection{}, false
	}
	items, ok := pair[0].([]any)
	if !ok {
		return Collection{}, false
	}
	meta, ok := pair[1].([]any)
	if !ok {
		return Collection{}, false
	}
	return Collection{Items: items, Meta: meta}, true
}

// Title is the first string-typed value in the collection's metadata.
func (c Collection) Title() string {
	for _, v := range c.Meta {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Assembler maps list pages into CollectionGroups.
type Assembler struct {
	// Items is the version set each list item is resolved against.
	Items api.Versions
	// Workers bounds parallel item resolution; values below 2 run serially.
	Workers int
	// Logger receives a Debug line for every item resolved by a fallback
	// version. Nil means slog.Default().
	Logger *slog.Logger
}

// Assemble classifies every group node, skipping those that are not
// collections, and resolves each collection's items in order.
func (a *Assembler) Assemble(groups []any) ([]api.CollectionGroup, error) {
	var out []api.CollectionGroup
	for i, g := range groups {
		c, ok := Classify(g)
		if !ok {
			continue
		}
		list, err := a.resolveAll(c.Items)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		out = append(out, api.CollectionGroup{Title: c.Title(), List: list})
	}
	return out, nil
}

// ExtractList resolves every element of the array found at root. Nothing at
// root yields an empty list.
func (a *Assembler) ExtractList(tree any, root api.Path) ([]api.Record, error) {
	node, ok := Navigate(tree, root)
	if !ok {
		return []api.Record{}, nil
	}
	items, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("list at %s is %T, not an array", root, node)
	}
	return a.resolveAll(items)
}

func (a *Assembler) resolveAll(items []any) ([]api.Record, error) {
	out := make([]api.Record, len(items))
	if a.Workers < 2 {
		for i, item := range items {
			res, err := ResolveItem(a.Items, item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			a.noteFallback(i, res)
			out[i] = res.Record
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(a.Workers)
	for i, item := range items {
		g.Go(func() error {
			res, err := ResolveItem(a.Items, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			a.noteFallback(i, res)
			out[i] = res.Record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Assembler) noteFallback(i int, res Resolution) {
	if len(a.Items.Specs) == 0 || res.Version == a.Items.Specs[0].Version {
		return
	}
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("list item resolved by fallback", "entity", a.Items.Entity, "item", i, "version", res.Version)
}

// Merge concatenates every group's list in encounter order and drops
// records structurally equal to one already seen.
func Merge(groups []api.CollectionGroup) []api.Record {
	out := []api.Record{}
	for _, g := range groups {
		for _, rec := range g.List {
			if !containsRecord(out, rec) {
				out = append(out, rec)
			}
		}
	}
	return out
}

func containsRecord(list []api.Record, rec api.Record) bool {
	for _, r := range list {
		if reflect.DeepEqual(r, rec) {
			return true
		}
	}
	return false
}
