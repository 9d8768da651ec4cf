package call

import "github.com/aretw0/hooksett/internal/convert"

// Args holds the final bound arguments a body receives. The typed accessors
// coerce weakly (handler-supplied values may arrive as strings or wider
// numeric types) and return the zero value when the argument is missing or
// incompatible.
type Args map[string]any

// Value returns the raw bound argument.
func (a Args) Value(name string) any {
	return a[name]
}

// Float returns the argument coerced to float64.
func (a Args) Float(name string) float64 {
	v, err := convert.To[float64](a[name])
	if err != nil {
		return 0
	}
	return v
}

// Int returns the argument coerced to int.
func (a Args) Int(name string) int {
	v, err := convert.To[int](a[name])
	if err != nil {
		return 0
	}
	return v
}

// String returns the argument coerced to string.
func (a Args) String(name string) string {
	v, err := convert.To[string](a[name])
	if err != nil {
		return ""
	}
	return v
}

// Bool returns the argument coerced to bool.
func (a Args) Bool(name string) bool {
	v, err := convert.To[bool](a[name])
	if err != nil {
		return false
	}
	return v
}
