package config

import (
	"context"
	"os"
)

// EnvVarProvider retrieves configuration values from environment variables.
type EnvVarProvider struct{}

// NewEnvVarProvider creates a new environment variable configuration provider.
func NewEnvVarProvider() EnvVarProvider {
	return EnvVarProvider{}
}

// Lookup returns the environment variable value for the given name.
func (p EnvVarProvider) Lookup(_ context.Context, name string) (string, bool) {
	return os.LookupEnv(name)
}
