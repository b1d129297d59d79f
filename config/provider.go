package config

import (
	"context"

	"github.com/cleitonmarx/envschema/internal/reflectx"
)

// Provider looks up raw configuration values by environment variable name.
// Implementations must be safe for concurrent reads if Resolve is called concurrently.
type Provider interface {
	// Lookup returns the value for name and whether it is set.
	Lookup(ctx context.Context, name string) (string, bool)
}

// SourceProvider is an optional interface for providers that delegate to other providers.
// CompositeProvider reports which of its providers supplied the value.
type SourceProvider interface {
	LookupWithSource(ctx context.Context, name string) (value string, source string, found bool)
}

// MapProvider serves values from an in-memory map.
type MapProvider map[string]string

// Lookup implements Provider.
func (p MapProvider) Lookup(_ context.Context, name string) (string, bool) {
	value, ok := p[name]
	return value, ok
}

func providerName(p Provider) string {
	return reflectx.TypeNameOf(p)
}
