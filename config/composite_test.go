package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProvider1 struct {
	*stubProvider
}
type testProvider2 struct {
	*stubProvider
}

func TestCompositeProvider_LookupWithSource(t *testing.T) {
	tests := map[string]struct {
		setStubs         func(p1 *stubProvider, p2 *stubProvider)
		expectedValue    string
		expectedProvider string
		expectedFound    bool
	}{
		"found_in_first_provider": {
			setStubs: func(p1 *stubProvider, p2 *stubProvider) {
				p1.set("key", "value1")
				p2.set("key", "value2")
			},
			expectedValue:    "value1",
			expectedProvider: "config.testProvider1",
			expectedFound:    true,
		},
		"found_in_second_provider": {
			setStubs: func(p1 *stubProvider, p2 *stubProvider) {
				p2.set("key", "value2")
			},
			expectedValue:    "value2",
			expectedProvider: "config.testProvider2",
			expectedFound:    true,
		},
		"empty_in_first_provider_falls_through": {
			setStubs: func(p1 *stubProvider, p2 *stubProvider) {
				p1.set("key", "")
				p2.set("key", "value2")
			},
			expectedValue:    "value2",
			expectedProvider: "config.testProvider2",
			expectedFound:    true,
		},
		"not_found_in_any_provider": {
			setStubs: func(p1 *stubProvider, p2 *stubProvider) {
				p1.set("key", "")
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p1 := testProvider1{stubProvider: &stubProvider{}}
			p2 := testProvider2{stubProvider: &stubProvider{}}
			if tt.setStubs != nil {
				tt.setStubs(p1.stubProvider, p2.stubProvider)
			}
			p := NewCompositeProvider(p1, nil, p2)

			gotValue, gotProvider, found := p.LookupWithSource(context.Background(), "key")
			assert.Equal(t, tt.expectedValue, gotValue)
			assert.Equal(t, tt.expectedProvider, gotProvider)
			assert.Equal(t, tt.expectedFound, found)

			gotValue, found = p.Lookup(context.Background(), "key")
			assert.Equal(t, tt.expectedValue, gotValue)
			assert.Equal(t, tt.expectedFound, found)
		})
	}
}

func TestResolve_WithCompositeProvider(t *testing.T) {
	overrides := MapProvider{"PORT": "9090"}
	env := testProvider1{stubProvider: &stubProvider{}}
	env.set("PORT", "8080")
	env.set("HOST", "localhost")

	result, err := Resolve(context.Background(), NewCompositeProvider(overrides, env), Schema{
		Spec{Key: "PORT", Map: Erase(Number())},
		Spec{Key: "HOST"},
	})
	require.NoError(t, err)

	port, _ := Get[float64](result, "PORT")
	assert.Equal(t, 9090.0, port)

	resolutions := result.Resolutions()
	assert.Equal(t, "config.MapProvider", resolutions[0].Provider)
	assert.Equal(t, "config.testProvider1", resolutions[1].Provider)
}
