// Package reflectx provides reflection helpers for tag-driven struct loading.
package reflectx

import (
	"fmt"
	"path"
	"reflect"
)

// GetTypeName returns a human-readable type name for a reflect.Type.
// Format: "package.TypeName" or just "TypeName" for built-in and composite types.
func GetTypeName(t reflect.Type) string {
	if t.PkgPath() == "" {
		if t.Name() == "" {
			return t.String()
		}
		return t.Name()
	}
	return fmt.Sprintf("%s.%s", path.Base(t.PkgPath()), t.Name())
}

// TypeNameOf returns the type name of a value using fmt formatting.
func TypeNameOf(v any) string {
	return fmt.Sprintf("%T", v)
}

// StructFieldIteratorFunc is called for each struct field during iteration.
type StructFieldIteratorFunc func(fieldValue reflect.Value, structField reflect.StructField, targetType reflect.Type) error

// IterateStructFields calls fns for each field of a struct pointer, in declaration order.
func IterateStructFields(target any, fns ...StructFieldIteratorFunc) error {
	v := reflect.ValueOf(target)
	if !IsPointerStruct(v) {
		return fmt.Errorf("target must be a struct pointer, got '%s'", typeNameOfValue(v))
	}
	vtype := v.Type()
	v = v.Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		for _, fn := range fns {
			if err := fn(v.Field(i), t.Field(i), vtype); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsPointerStruct reports whether v is a non-nil pointer to a struct.
func IsPointerStruct(v reflect.Value) bool {
	return v.IsValid() && v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct
}

// Indirect returns the element type of a pointer type and true, or t and false.
func Indirect(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Pointer {
		return t.Elem(), true
	}
	return t, false
}

// SetFieldValue assigns value to field. A nil value zeroes the field. Pointer fields
// receive a freshly allocated pointer when value has the pointer's element type.
func SetFieldValue(field reflect.Value, structField reflect.StructField, value any) error {
	if !field.CanSet() {
		return fmt.Errorf("field '%s' is not settable", structField.Name)
	}
	if value == nil {
		field.SetZero()
		return nil
	}

	v := reflect.ValueOf(value)
	ft := field.Type()
	switch {
	case v.Type().AssignableTo(ft):
		field.Set(v)
	case ft.Kind() == reflect.Pointer && v.Type().AssignableTo(ft.Elem()):
		ptr := reflect.New(ft.Elem())
		ptr.Elem().Set(v)
		field.Set(ptr)
	default:
		return fmt.Errorf("field '%s' of type '%s' cannot hold a value of type '%s'",
			structField.Name, GetTypeName(ft), GetTypeName(v.Type()))
	}
	return nil
}

func typeNameOfValue(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return GetTypeName(v.Type())
}
