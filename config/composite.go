package config

import (
	"context"

	"github.com/cleitonmarx/envschema/internal/reflectx"
)

// namedProvider wraps a Provider with its type name for reporting.
type namedProvider struct {
	provider Provider
	name     string
}

// CompositeProvider chains multiple providers and returns the first non-empty value.
// An empty value in an earlier provider does not shadow a later one, matching how
// Resolve treats empty variables as unset.
type CompositeProvider struct {
	providers []namedProvider
}

// NewCompositeProvider creates a provider that tries each provider in order.
func NewCompositeProvider(providers ...Provider) CompositeProvider {
	named := make([]namedProvider, 0, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		named = append(named, namedProvider{provider: p, name: reflectx.TypeNameOf(p)})
	}
	return CompositeProvider{providers: named}
}

// Lookup implements Provider.
func (p CompositeProvider) Lookup(ctx context.Context, name string) (string, bool) {
	value, _, found := p.LookupWithSource(ctx, name)
	return value, found
}

// LookupWithSource returns the value and the type name of the provider that supplied it.
func (p CompositeProvider) LookupWithSource(ctx context.Context, name string) (string, string, bool) {
	for _, np := range p.providers {
		if value, ok := np.provider.Lookup(ctx, name); ok && value != "" {
			return value, np.name, true
		}
	}
	return "", "", false
}
