// Package value provides a small dynamically typed value handle used to store
// animated attribute data. A Type describes how to construct a value of some
// native kind; a Value pairs a Type with its current data and can be created,
// copied, and overwritten in place.
package value

// Type describes a kind of value that can be stored in a Value.
type Type struct {
	name   string
	create func() any
}

// NewType creates a type with the given name and zero-value constructor.
func NewType(name string, create func() any) *Type {
	return &Type{
		name:   name,
		create: create,
	}
}

// Name returns the type's name.
func (t *Type) Name() string {
	return t.name
}

// Create returns a default-constructed value of this type.
func (t *Type) Create() Value {
	return Value{
		typ:  t,
		data: t.create(),
	}
}

// New wraps the given native data in a value of this type.
func (t *Type) New(data any) Value {
	return Value{
		typ:  t,
		data: data,
	}
}

// Value is a typed handle around native data.
type Value struct {
	typ  *Type
	data any
}

// Invalid returns the invalid value. It has no type and no data.
func Invalid() Value {
	return Value{}
}

// IsValid reports whether the value carries a type.
func (v Value) IsValid() bool {
	return v.typ != nil
}

// Type returns the value's type, or nil for the invalid value.
func (v Value) Type() *Type {
	return v.typ
}

// Data returns the native data held by the value.
func (v Value) Data() any {
	return v.data
}

// Is reports whether the value is of the given type.
func (v Value) Is(t *Type) bool {
	return v.typ == t
}

// Set overwrites this value's data in place with the other value's data.
// The type is taken from the other value when this value has none yet.
func (v *Value) Set(other Value) {
	if v.typ == nil {
		v.typ = other.typ
	}

	v.data = other.data
}

// SetData overwrites this value's native data in place.
func (v *Value) SetData(data any) {
	v.data = data
}
