package config

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync"

	"github.com/cleitonmarx/envschema/internal/reflectx"
)

const (
	// tagName is the struct tag key for the environment variable name
	tagName = "config"
	// defaultTagName is the struct tag key for default values
	defaultTagName = "default"
	// requiredTagName marks a field as required when set to a true boolean string
	requiredTagName = "required"
	// sepTagName is the struct tag key for the separator of slice fields
	sepTagName = "sep"
	// defaultSeparator splits slice fields without a sep tag
	defaultSeparator = ","
)

var (
	registryMu sync.RWMutex
	// mapperRegistry maps scalar types to mappers used by LoadStruct
	mapperRegistry map[reflect.Type]func(value string) any
)

// RegisterMapper registers fn as the mapper for fields of type T, *T and []T in LoadStruct.
// Built-in mappers exist for string, bool, float64, int and int64.
func RegisterMapper[T any](fn MapFunc[T]) {
	registryMu.Lock()
	defer registryMu.Unlock()
	mapperRegistry[reflect.TypeOf((*T)(nil)).Elem()] = Erase(fn)
}

func lookupMapper(t reflect.Type) (func(value string) any, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := mapperRegistry[t]
	return fn, ok
}

// structField ties a struct field to its schema entry.
type structField struct {
	value reflect.Value
	field reflect.StructField
}

// LoadStruct resolves every field of target tagged with config:"NAME" and assigns the result.
//
// Pointer fields receive nil when the variable is unset, empty and has no default;
// other fields are left unchanged in that case. Slice fields split the raw value on
// the sep tag (default ","). A required:"true" tag makes a missing value an error.
func LoadStruct[T any](ctx context.Context, provider Provider, target *T) error {
	var (
		schema Schema
		fields = make(map[string]structField)
	)

	err := reflectx.IterateStructFields(target, func(fieldValue reflect.Value, sf reflect.StructField, _ reflect.Type) error {
		spec, ok, err := specForField(sf)
		if err != nil || !ok {
			return err
		}
		schema = append(schema, spec)
		fields[spec.Key] = structField{value: fieldValue, field: sf}
		return nil
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	result, err := Resolve(ctx, provider, schema)
	if err != nil {
		return err
	}

	for _, res := range result.Resolutions() {
		sf := fields[res.Key]
		value, ok := result.Value(res.Key)
		if !ok {
			if _, isPtr := reflectx.Indirect(sf.field.Type); !isPtr {
				continue
			}
			value = nil
		}
		if err := reflectx.SetFieldValue(sf.value, sf.field, value); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// LoadStructEnv loads target from the process environment.
func LoadStructEnv[T any](target *T) error {
	return LoadStruct(context.Background(), NewEnvVarProvider(), target)
}

// specForField builds the Spec of a tagged struct field. ok is false for untagged fields.
func specForField(sf reflect.StructField) (Spec, bool, error) {
	name, ok := sf.Tag.Lookup(tagName)
	if !ok {
		return Spec{}, false, nil
	}

	mapFn, err := mapperForType(sf)
	if err != nil {
		return Spec{}, false, err
	}

	required := false
	if raw, ok := sf.Tag.Lookup(requiredTagName); ok {
		required, err = strconv.ParseBool(raw)
		if err != nil {
			return Spec{}, false, fmt.Errorf("invalid required tag on field '%s': %w", sf.Name, err)
		}
	}

	return Spec{
		Key:      sf.Name,
		Name:     name,
		Default:  sf.Tag.Get(defaultTagName),
		Required: required,
		Map:      mapFn,
	}, true, nil
}

// mapperForType picks the mapper for a field from the registry, splitting slice fields.
func mapperForType(sf reflect.StructField) (func(string) any, error) {
	if fn, ok := lookupMapper(sf.Type); ok {
		return fn, nil
	}
	t, _ := reflectx.Indirect(sf.Type)
	if fn, ok := lookupMapper(t); ok {
		return fn, nil
	}
	if t.Kind() != reflect.Slice {
		return nil, fmt.Errorf("mapper for type '%s' does not exist", reflectx.GetTypeName(sf.Type))
	}

	item, ok := lookupMapper(t.Elem())
	if !ok {
		return nil, fmt.Errorf("mapper for type '%s' does not exist", reflectx.GetTypeName(sf.Type))
	}
	sep, ok := sf.Tag.Lookup(sepTagName)
	if !ok || sep == "" {
		sep = defaultSeparator
	}

	split := Separated(sep, MapFunc[any](item))
	return func(value string) any {
		parts := split(value)
		out := reflect.MakeSlice(t, len(parts), len(parts))
		for i, part := range parts {
			if part == nil {
				continue
			}
			out.Index(i).Set(reflect.ValueOf(part))
		}
		return out.Interface()
	}, nil
}

// truncate converts a Number result to an int64. NaN, infinities and values
// outside the int64 range become 0.
func truncate(n float64) int64 {
	return int64(truncateWithin(n, math.MinInt64))
}

// truncateInt is truncate for the platform int.
func truncateInt(n float64) int {
	return int(truncateWithin(n, math.MinInt))
}

// truncateWithin drops the fraction of n, or returns 0 when n does not fit a
// signed integer whose minimum is lowest. The range is [lowest, -lowest).
func truncateWithin(n float64, lowest int64) float64 {
	lo := float64(lowest)
	if math.IsNaN(n) || n < lo || n >= -lo {
		return 0
	}
	return math.Trunc(n)
}

func init() {
	mapperRegistry = map[reflect.Type]func(value string) any{
		reflect.TypeOf((*string)(nil)).Elem():  Erase(String()),
		reflect.TypeOf((*bool)(nil)).Elem():    Erase(Boolean()),
		reflect.TypeOf((*float64)(nil)).Elem(): Erase(Number()),
		reflect.TypeOf((*int)(nil)).Elem():     func(value string) any { return truncateInt(parseLeadingInt(value)) },
		reflect.TypeOf((*int64)(nil)).Elem():   func(value string) any { return truncate(parseLeadingInt(value)) },
	}
}
