// Package extract turns raw nested trees into Records using declarative
// MappingSpecs, falling back across schema versions when the upstream shape
// drifts.
package extract

import (
	"errors"
	"maps"
	"slices"

	"github.com/agentic-research/playmap/api"
)

// Extract applies every field rule of spec against tree. Absence at a path
// is handed to the transform rather than skipped, so every declared field
// appears in the result. Any transform failure fails the whole spec.
func Extract(spec api.MappingSpec, tree any) (api.Record, error) {
	rec := make(api.Record, len(spec.Fields))
	// Sorted so the reported failure is stable when several fields break.
	for _, name := range slices.Sorted(maps.Keys(spec.Fields)) {
		rule := spec.Fields[name]
		raw, ok := Navigate(tree, rule.Path)
		v, err := rule.Apply(raw, ok)
		if err != nil {
			return nil, &TransformError{Field: name, Path: rule.Path, Err: err}
		}
		rec[name] = v
	}
	return rec, nil
}

// Resolution is a successful extraction tagged with the version that won.
type Resolution struct {
	Record  api.Record
	Version string
}

var errNoVersions = errors.New("no versions declared")

// Resolve tries each version in declared order and returns the first that
// extracts cleanly. When all fail, the error is an *ExhaustedError carrying
// the last version's failure.
func Resolve(versions api.Versions, tree any) (Resolution, error) {
	if len(versions.Specs) == 0 {
		return Resolution{}, &ExhaustedError{Entity: versions.Entity, Last: errNoVersions}
	}
	var last error
	tried := make([]string, 0, len(versions.Specs))
	for _, spec := range versions.Specs {
		tried = append(tried, spec.Version)
		rec, err := Extract(spec, tree)
		if err == nil {
			return Resolution{Record: rec, Version: spec.Version}, nil
		}
		last = err
	}
	return Resolution{}, &ExhaustedError{Entity: versions.Entity, Tried: tried, Last: last}
}

// ResolveItem extracts one list item. The primary version always runs; if
// its discriminator field is falsy the secondary version's Record is
// returned unconditionally. A primary failure is not recovered: it is
// returned as an *ExhaustedError. There is no third level.
func ResolveItem(versions api.Versions, item any) (Resolution, error) {
	if len(versions.Specs) == 0 {
		return Resolution{}, &ExhaustedError{Entity: versions.Entity, Last: errNoVersions}
	}
	primary := versions.Specs[0]
	rec, err := Extract(primary, item)
	if err != nil {
		return Resolution{}, &ExhaustedError{Entity: versions.Entity, Tried: []string{primary.Version}, Last: err}
	}
	if len(versions.Specs) == 1 || primary.Discriminator == "" || Truthy(rec[primary.Discriminator]) {
		return Resolution{Record: rec, Version: primary.Version}, nil
	}

	secondary := versions.Specs[1]
	rec, err = Extract(secondary, item)
	if err != nil {
		return Resolution{}, &ExhaustedError{
			Entity: versions.Entity,
			Tried:  []string{primary.Version, secondary.Version},
			Last:   err,
		}
	}
	return Resolution{Record: rec, Version: secondary.Version}, nil
}
