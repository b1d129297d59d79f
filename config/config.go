// Package config resolves typed configuration values from environment variables.
// A Schema declares the expected variables; Resolve reads each one through a Provider,
// falls back to its default, and converts the raw string with the entry's mapper.
package config

import (
	"context"
	"fmt"
)

// Spec is the untyped description of a single schema entry.
type Spec struct {
	// Key is the logical name of the entry in the Result.
	Key string
	// Name is the environment variable to look up. Empty means Key.
	Name string
	// Default is the raw value used when the variable is unset or empty. Empty means no default.
	Default string
	// Required makes a missing value (no variable and no default) a resolution error.
	Required bool
	// Map converts the raw string into the entry's value. Nil keeps the raw string.
	Map func(value string) any
}

// Entry is anything that can describe itself as a Spec.
// Spec itself, Var and Opt are entries.
type Entry interface {
	Spec() Spec
}

// Schema is an ordered list of entries. Entries are resolved in declared order.
type Schema []Entry

// Spec implements Entry.
func (s Spec) Spec() Spec {
	return s
}

// LookupName returns the environment variable name consulted for the entry.
func (s Spec) LookupName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Key
}

// Resolve computes a Result for schema, reading raw values from provider.
// It stops at the first required entry without a value and returns a *MissingError.
func Resolve(ctx context.Context, provider Provider, schema Schema) (Result, error) {
	if provider == nil {
		return Result{}, fmt.Errorf("config: provider is nil")
	}

	result := newResult(len(schema))
	for _, entry := range schema {
		spec := entry.Spec()
		name := spec.LookupName()

		value, providerName := lookup(ctx, provider, name)
		source := SourceEnv
		if value == "" {
			value, providerName = spec.Default, ""
			source = SourceDefault
		}

		if value == "" {
			if spec.Required {
				return Result{}, &MissingError{Key: spec.Key, Name: name}
			}
			result.set(Resolution{Key: spec.Key, Name: name, Source: SourceUnset}, nil)
			continue
		}

		var mapped any = value
		if spec.Map != nil {
			mapped = spec.Map(value)
		}
		result.set(Resolution{Key: spec.Key, Name: name, Source: source, Provider: providerName}, mapped)
	}
	return result, nil
}

// ResolveEnv resolves schema against the process environment.
func ResolveEnv(schema Schema) (Result, error) {
	return Resolve(context.Background(), NewEnvVarProvider(), schema)
}

// lookup reads name from provider and reports which provider answered.
func lookup(ctx context.Context, provider Provider, name string) (string, string) {
	if sp, ok := provider.(SourceProvider); ok {
		value, source, found := sp.LookupWithSource(ctx, name)
		if !found {
			return "", ""
		}
		return value, source
	}
	value, found := provider.Lookup(ctx, name)
	if !found {
		return "", ""
	}
	return value, providerName(provider)
}
