package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-research/playmap/api"
)

// ErrNoValue is returned by transforms that require a value at their path.
var ErrNoValue = errors.New("no value at path")

// TransformError reports a transform that refused its input. It fails the
// whole MappingSpec it belongs to.
type TransformError struct {
	Field string
	Path  api.Path
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("field %s at %s: %v", e.Field, e.Path, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// ExhaustedError is returned once every declared version of an entity has
// failed. Last is the failure of the final version tried.
type ExhaustedError struct {
	Entity string
	Tried  []string
	Last   error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("extract %s: all versions failed (%s): %v",
		e.Entity, strings.Join(e.Tried, ", "), e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
