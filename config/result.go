package config

import (
	"github.com/cleitonmarx/envschema/introspection"
)

// Source tells where the raw value of a resolved entry came from.
type Source string

const (
	// SourceEnv means the provider returned a non-empty value.
	SourceEnv Source = "env"
	// SourceDefault means the entry's default was used.
	SourceDefault Source = "default"
	// SourceUnset means neither was available and the entry holds the null marker.
	SourceUnset Source = "unset"
)

// Resolution records how one entry was resolved.
type Resolution struct {
	Key      string
	Name     string
	Source   Source
	Provider string
}

// Result holds resolved values keyed by logical key.
// A key whose Source is SourceUnset holds the null marker.
type Result struct {
	values      map[string]any
	sources     map[string]Source
	resolutions []Resolution
}

func newResult(size int) Result {
	return Result{
		values:      make(map[string]any, size),
		sources:     make(map[string]Source, size),
		resolutions: make([]Resolution, 0, size),
	}
}

func (r *Result) set(res Resolution, value any) {
	if _, exists := r.values[res.Key]; exists {
		for i := range r.resolutions {
			if r.resolutions[i].Key == res.Key {
				r.resolutions = append(r.resolutions[:i], r.resolutions[i+1:]...)
				break
			}
		}
	}
	r.values[res.Key] = value
	r.sources[res.Key] = res.Source
	r.resolutions = append(r.resolutions, res)
}

// Value returns the value stored under key. ok is false for unknown keys and for the null marker.
func (r Result) Value(key string) (value any, ok bool) {
	if !r.Has(key) || r.sources[key] == SourceUnset {
		return nil, false
	}
	return r.values[key], true
}

// Has reports whether key was part of the resolved schema.
func (r Result) Has(key string) bool {
	_, exists := r.values[key]
	return exists
}

// IsNull reports whether key resolved to the null marker.
func (r Result) IsNull(key string) bool {
	source, exists := r.sources[key]
	return exists && source == SourceUnset
}

// Keys returns the resolved keys in schema order.
func (r Result) Keys() []string {
	keys := make([]string, len(r.resolutions))
	for i, res := range r.resolutions {
		keys[i] = res.Key
	}
	return keys
}

// Map returns a copy of the resolved values. Null entries map to nil.
func (r Result) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Resolutions returns how every entry was resolved, in schema order.
func (r Result) Resolutions() []Resolution {
	return append([]Resolution(nil), r.resolutions...)
}

// Get returns the value under key as T.
// ok is false when the key is unknown, null, or holds a different type.
func Get[T any](r Result, key string) (T, bool) {
	var zero T
	value, ok := r.Value(key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Report builds a resolution report for display.
func (r Result) Report() introspection.Report {
	fields := make([]introspection.FieldReport, 0, len(r.resolutions))
	for _, res := range r.resolutions {
		fields = append(fields, introspection.FieldReport{
			Key:      res.Key,
			Name:     res.Name,
			Source:   string(res.Source),
			Provider: res.Provider,
			Value:    r.values[res.Key],
		})
	}
	return introspection.Report{Fields: fields}
}
