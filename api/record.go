package api

import "maps"

// Record is the flat output of one successful extraction.
// Treat it as immutable; use With to derive a record with context fields.
type Record map[string]any

// With returns a copy of r with key set to value.
func (r Record) With(key string, value any) Record {
	out := make(Record, len(r)+1)
	maps.Copy(out, r)
	out[key] = value
	return out
}

// String returns the field as a string, or "" when missing or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// CollectionGroup is one titled collection from a list page.
type CollectionGroup struct {
	Title string   `json:"title,omitempty"`
	List  []Record `json:"list"`
}

// Feature is one entry of an app's feature list.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Histogram maps star rating (1..5) to rating count.
type Histogram map[int]int64
