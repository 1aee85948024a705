package extract

import (
	"math"

	"github.com/agentic-research/playmap/api"
)

// Partitioned is a raw tree that exposes named sections, keyed by
// data-source id or service-request id.
type Partitioned interface {
	Partition(key string) (any, bool)
}

// Navigate resolves p against tree. It never fails: a missing partition, an
// index into a non-array, an out-of-range index, or a null value all report
// ok == false.
//
// A Path with a Root first selects that partition from tree, which must be
// Partitioned or a decoded JSON object. A relative Path is consumed against
// tree directly.
func Navigate(tree any, p api.Path) (any, bool) {
	node := tree
	if key := p.Root(); key != "" {
		var ok bool
		switch t := tree.(type) {
		case Partitioned:
			node, ok = t.Partition(key)
		case map[string]any:
			node, ok = t[key]
		}
		if !ok {
			return nil, false
		}
	}
	if p.Len() == 0 {
		return node, node != nil
	}

	results := p.Expr().Get(node)
	if len(results) == 0 || results[0] == nil {
		return nil, false
	}
	return results[0], true
}

// Truthy reports whether v would count as "set" in the upstream payload:
// nil, false, zero numbers and empty strings are not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}
