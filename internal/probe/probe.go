// Package probe locates values inside a raw document, for repairing
// mappings after upstream drift.
package probe

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/extract"
	"github.com/agentic-research/playmap/internal/scriptdata"
)

// Hit is one matching value.
type Hit struct {
	Path  api.Path
	Value any
}

// Find returns every addressable value in doc matching needle, partitions
// in sorted key order and elements in index order. Strings match when they
// contain needle; numbers match when needle parses to the same number.
// Object members are not addressable by a Path and are skipped.
func Find(doc *scriptdata.Document, needle string) []Hit {
	num, isNum := parseNumber(needle)
	match := func(v any) bool {
		switch v := v.(type) {
		case string:
			return needle != "" && strings.Contains(v, needle)
		case int64:
			return isNum && float64(v) == num
		case float64:
			return isNum && v == num
		}
		return false
	}

	var hits []Hit
	var walk func(node any, p api.Path)
	walk = func(node any, p api.Path) {
		if arr, ok := node.([]any); ok {
			for i, el := range arr {
				walk(el, p.Child(i))
			}
			return
		}
		if match(node) {
			hits = append(hits, Hit{Path: p, Value: node})
		}
	}
	for _, key := range slices.Sorted(maps.Keys(doc.Data)) {
		walk(doc.Data[key], api.At(key))
	}
	return hits
}

// Missing lists the fields of spec whose path resolves to nothing in tree.
// A field listed here is either legitimately empty or has drifted.
func Missing(spec api.MappingSpec, tree any) []string {
	var out []string
	for _, name := range slices.Sorted(maps.Keys(spec.Fields)) {
		if _, ok := extract.Navigate(tree, spec.Fields[name].Path); !ok {
			out = append(out, name)
		}
	}
	return out
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
