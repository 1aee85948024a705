package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// Path addresses a value inside a raw tree. An optional Root selects a named
// partition (data-source id or service-request id); Steps are array indices
// consumed in order. A Path without a Root resolves directly against the
// subtree it is given.
type Path struct {
	root  string
	steps []int
	expr  jp.Expr
}

// At builds a Path that starts in the named partition.
func At(root string, steps ...int) Path {
	return newPath(root, steps)
}

// Rel builds a Path resolved against whatever subtree it is applied to.
func Rel(steps ...int) Path {
	return newPath("", steps)
}

func newPath(root string, steps []int) Path {
	for _, s := range steps {
		if s < 0 {
			panic(fmt.Sprintf("api: negative path step %d", s))
		}
	}
	cp := append([]int(nil), steps...)
	x := jp.R()
	for _, s := range cp {
		x = x.N(s)
	}
	return Path{root: root, steps: cp, expr: x}
}

// ParsePath reads the JSONPath form produced by String, e.g. $['ds:5'][0][12]
// or $[0][3]. Only a leading child key and non-negative indices are accepted.
func ParsePath(s string) (Path, error) {
	x, err := jp.ParseString(s)
	if err != nil {
		return Path{}, fmt.Errorf("invalid path %q: %w", s, err)
	}
	var root string
	var steps []int
	for i, frag := range x {
		switch f := frag.(type) {
		case jp.Root, jp.Bracket:
		case jp.Child:
			if root != "" || len(steps) > 0 {
				return Path{}, fmt.Errorf("invalid path %q: key %q must come first", s, string(f))
			}
			root = string(f)
		case jp.Nth:
			if f < 0 {
				return Path{}, fmt.Errorf("invalid path %q: negative index %d", s, int(f))
			}
			steps = append(steps, int(f))
		default:
			return Path{}, fmt.Errorf("invalid path %q: unsupported fragment %d", s, i)
		}
	}
	return newPath(root, steps), nil
}

// Root returns the partition key, or "" for a relative path.
func (p Path) Root() string { return p.root }

// Steps returns a copy of the index steps.
func (p Path) Steps() []int { return append([]int(nil), p.steps...) }

// Len is the number of index steps.
func (p Path) Len() int { return len(p.steps) }

// Expr is the compiled JSONPath for the index steps, rooted at the partition
// (or the subtree for relative paths).
func (p Path) Expr() jp.Expr { return p.expr }

// Child returns a new Path with one more index step.
func (p Path) Child(step int) Path {
	steps := make([]int, 0, len(p.steps)+1)
	steps = append(steps, p.steps...)
	return newPath(p.root, append(steps, step))
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	if p.root != "" {
		b.WriteString("['")
		b.WriteString(strings.ReplaceAll(p.root, "'", `\'`))
		b.WriteString("']")
	}
	for _, s := range p.steps {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(s))
		b.WriteByte(']')
	}
	return b.String()
}
