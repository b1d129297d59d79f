package config

// Var is a typed schema entry that always resolves to a value.
// Build it with Required or WithDefault; read it back with Get.
type Var[T any] struct {
	key      string
	name     string
	def      string
	required bool
	mapFn    MapFunc[T]
}

// Required declares an entry that fails resolution when its variable is unset or empty.
func Required[T any](key string, mapFn MapFunc[T]) Var[T] {
	return Var[T]{key: key, required: true, mapFn: mapFn}
}

// WithDefault declares an entry that falls back to def when its variable is unset or empty.
// An empty def cannot satisfy the entry, so it then behaves like Required.
func WithDefault[T any](key, def string, mapFn MapFunc[T]) Var[T] {
	return Var[T]{key: key, def: def, mapFn: mapFn}
}

// Named returns a copy of v that looks up the variable name instead of its key.
func (v Var[T]) Named(name string) Var[T] {
	v.name = name
	return v
}

// Default returns a copy of v with def as its default.
func (v Var[T]) Default(def string) Var[T] {
	v.def = def
	return v
}

// Key returns the logical key of v.
func (v Var[T]) Key() string {
	return v.key
}

// Spec implements Entry.
func (v Var[T]) Spec() Spec {
	return Spec{
		Key:      v.key,
		Name:     v.name,
		Default:  v.def,
		Required: v.required || v.def == "",
		Map:      Erase(v.mapFn),
	}
}

// Get returns the value of v in r. It returns the zero value only when r was not
// resolved from a schema containing v, or the stored value is not a T.
func (v Var[T]) Get(r Result) T {
	value, _ := Get[T](r, v.key)
	return value
}

// Opt is a typed schema entry without a default; it resolves to the null marker
// when its variable is unset or empty.
type Opt[T any] struct {
	key   string
	name  string
	mapFn MapFunc[T]
}

// Optional declares an entry that may be absent.
func Optional[T any](key string, mapFn MapFunc[T]) Opt[T] {
	return Opt[T]{key: key, mapFn: mapFn}
}

// Named returns a copy of o that looks up the variable name instead of its key.
func (o Opt[T]) Named(name string) Opt[T] {
	o.name = name
	return o
}

// Default returns a Var with def as its default, turning the entry non-nullable.
func (o Opt[T]) Default(def string) Var[T] {
	return Var[T]{key: o.key, name: o.name, def: def, mapFn: o.mapFn}
}

// Key returns the logical key of o.
func (o Opt[T]) Key() string {
	return o.key
}

// Spec implements Entry.
func (o Opt[T]) Spec() Spec {
	return Spec{Key: o.key, Name: o.name, Map: Erase(o.mapFn)}
}

// Get returns the value of o in r and false for the null marker.
func (o Opt[T]) Get(r Result) (T, bool) {
	return Get[T](r, o.key)
}
