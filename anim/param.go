package anim

// Numeric constrains the value types a Param can carry.
type Numeric interface {
	~int | ~int64 | ~float32 | ~float64
}

// Mode describes how a Param combines with the value before it.
type Mode int

// Param modes.
const (
	ModeUnset Mode = iota
	ModeSet
	ModeAdd
	ModeMultiply
)

// Param is an optional animation parameter. Params stack: joining a list of
// params folds each one over a default value according to its mode, so a
// later param can replace, offset, or scale what an earlier one produced.
// The zero Param is unset and invisible to joins.
type Param[T Numeric] struct {
	Value T
	Mode  Mode
}

// Set creates a param that replaces the current value.
func Set[T Numeric](v T) Param[T] { return Param[T]{Value: v, Mode: ModeSet} }

// Add creates a param that offsets the current value.
func Add[T Numeric](v T) Param[T] { return Param[T]{Value: v, Mode: ModeAdd} }

// Multiply creates a param that scales the current value.
func Multiply[T Numeric](v T) Param[T] { return Param[T]{Value: v, Mode: ModeMultiply} }

// Get resolves the param against a default value.
func (p Param[T]) Get(defaultValue T) T {
	return Joins(defaultValue, p)
}

// Join combines this param with a later one. Unset sides pass through; two
// set sides collapse into a single set param holding the folded result over
// the default value.
func (p Param[T]) Join(defaultValue T, next Param[T]) Param[T] {
	if p.Mode == ModeUnset {
		return next
	}

	if next.Mode == ModeUnset {
		return p
	}

	return Set(Joins(defaultValue, p, next))
}

// Joins folds params left to right over a default value.
func Joins[T Numeric](defaultValue T, params ...Param[T]) T {
	result := defaultValue

	for _, param := range params {
		switch param.Mode {
		case ModeSet:
			result = param.Value
		case ModeAdd:
			result += param.Value
		case ModeMultiply:
			result *= param.Value
		case ModeUnset:
		}
	}

	return result
}
