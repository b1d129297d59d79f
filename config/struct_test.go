package config

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStruct(t *testing.T) {
	RegisterMapper(func(value string) *url.URL {
		u, err := url.Parse(value)
		if err != nil {
			return nil
		}
		return u
	})

	type (
		validConfig struct {
			Name        string    `config:"NAME" required:"true"`
			Port        int       `config:"PORT" default:"8080"`
			Big         int64     `config:"BIG"`
			Ratio       float64   `config:"RATIO"`
			Debug       bool      `config:"DEBUG" default:"false"`
			Hosts       []string  `config:"HOSTS"`
			Weights     []float64 `config:"WEIGHTS" sep:";"`
			Token       *string   `config:"TOKEN"`
			Timeout     *int      `config:"TIMEOUT" default:"30"`
			Endpoint    *url.URL  `config:"ENDPOINT"`
			Untouched   string    `config:"UNTOUCHED"`
			NotLoaded   string
			notExported string
		}
		missingRequired struct {
			Name string `config:"NAME" required:"true"`
		}
		mapperNotFound struct {
			Value uint `config:"VALUE"`
		}
		sliceMapperNotFound struct {
			Values []uint `config:"VALUES"`
		}
		invalidRequiredTag struct {
			Name string `config:"NAME" required:"maybe"`
		}
		fieldNotSettable struct {
			Port  int `config:"PORT"`
			token int `config:"TOKEN"`
		}
	)

	tests := map[string]struct {
		target      any
		provider    MapProvider
		expected    any
		expectedErr string
	}{
		"valid_config": {
			target: &validConfig{Untouched: "keep", Token: new(string), NotLoaded: "same"},
			provider: MapProvider{
				"NAME":     "svc",
				"BIG":      "9000000000",
				"RATIO":    "nope",
				"HOSTS":    "a,b",
				"WEIGHTS":  "1;2.5",
				"TOKEN":    "",
				"ENDPOINT": "https://example.com/x",
			},
			expected: &validConfig{
				Name:      "svc",
				Port:      8080,
				Big:       9000000000,
				Debug:     false,
				Hosts:     []string{"a", "b"},
				Weights:   []float64{1, 2},
				Token:     nil,
				Timeout:   intPtr(30),
				Endpoint:  &url.URL{Scheme: "https", Host: "example.com", Path: "/x"},
				Untouched: "keep",
				NotLoaded: "same",
			},
		},
		"missing_required": {
			target:      &missingRequired{},
			provider:    MapProvider{},
			expected:    &missingRequired{},
			expectedErr: "config: environment variable 'NAME' is not set",
		},
		"mapper_not_found": {
			target:      &mapperNotFound{},
			expected:    &mapperNotFound{},
			expectedErr: "config: mapper for type 'uint' does not exist",
		},
		"slice_mapper_not_found": {
			target:      &sliceMapperNotFound{},
			expected:    &sliceMapperNotFound{},
			expectedErr: "config: mapper for type '[]uint' does not exist",
		},
		"invalid_required_tag": {
			target:      &invalidRequiredTag{},
			expected:    &invalidRequiredTag{},
			expectedErr: "config: invalid required tag on field 'Name': strconv.ParseBool: parsing \"maybe\": invalid syntax",
		},
		"field_not_settable": {
			target:      &fieldNotSettable{},
			provider:    MapProvider{"PORT": "42", "TOKEN": "7"},
			expected:    &fieldNotSettable{Port: 42},
			expectedErr: "config: field 'token' is not settable",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var err error
			switch target := tt.target.(type) {
			case *validConfig:
				err = LoadStruct(ctx, tt.provider, target)
				require.True(t, IsNaN(target.Ratio))
				target.Ratio = 0
			case *missingRequired:
				err = LoadStruct(ctx, tt.provider, target)
			case *mapperNotFound:
				err = LoadStruct(ctx, tt.provider, target)
			case *sliceMapperNotFound:
				err = LoadStruct(ctx, tt.provider, target)
			case *invalidRequiredTag:
				err = LoadStruct(ctx, tt.provider, target)
			case *fieldNotSettable:
				err = LoadStruct(ctx, tt.provider, target)
			default:
				t.Fatalf("unsupported target type")
			}

			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, tt.target)
		})
	}
}

func TestLoadStruct_NotAStructPointer(t *testing.T) {
	n := 1
	err := LoadStruct(context.Background(), MapProvider{}, &n)
	assert.EqualError(t, err, "config: target must be a struct pointer, got '*int'")
}

func TestLoadStructEnv(t *testing.T) {
	t.Setenv("ENVSCHEMA_STRUCT_LEVELS", "1,0,x")

	var cfg struct {
		Levels []int `config:"ENVSCHEMA_STRUCT_LEVELS"`
	}
	require.NoError(t, LoadStructEnv(&cfg))
	assert.Equal(t, []int{1, 0, 0}, cfg.Levels)
}

func TestLoadStruct_IntegerRange(t *testing.T) {
	type integers struct {
		Int64    int64   `config:"INT64"`
		Int      int     `config:"INT"`
		Negative int64   `config:"NEGATIVE"`
		Max      int64   `config:"MAX"`
		Min      int64   `config:"MIN"`
		Fraction *int    `config:"FRACTION"`
		List     []int64 `config:"LIST"`
	}

	tests := map[string]struct {
		provider MapProvider
		expected integers
	}{
		"above_range_becomes_zero": {
			provider: MapProvider{
				"INT64":    "99999999999999999999",
				"INT":      "99999999999999999999",
				"NEGATIVE": "-99999999999999999999",
				"LIST":     "1,99999999999999999999,-3",
			},
			expected: integers{List: []int64{1, 0, -3}},
		},
		"power_of_two_boundary": {
			provider: MapProvider{
				"MAX": "9223372036854775808",
				"MIN": "-9223372036854775808",
			},
			expected: integers{Max: 0, Min: math.MinInt64},
		},
		"in_range_values": {
			provider: MapProvider{
				"INT64":    "9000000000000000000",
				"INT":      "-42",
				"FRACTION": "12.9",
			},
			expected: integers{Int64: 9000000000000000000, Int: -42, Fraction: intPtr(12)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got integers
			require.NoError(t, LoadStruct(context.Background(), tt.provider, &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

type nilStringer struct{}

func (nilStringer) String() string { return "" }

func TestLoadStruct_SliceItemMapperReturnsNil(t *testing.T) {
	RegisterMapper(func(value string) fmt.Stringer {
		if value == "" {
			return nil
		}
		return nilStringer{}
	})

	var cfg struct {
		Items []fmt.Stringer `config:"ITEMS"`
	}
	require.NotPanics(t, func() {
		require.NoError(t, LoadStruct(context.Background(), MapProvider{"ITEMS": "a,,b"}, &cfg))
	})
	assert.Equal(t, []fmt.Stringer{nilStringer{}, nil, nilStringer{}}, cfg.Items)
}

func intPtr(v int) *int {
	return &v
}
