// Package convert centralizes weak type coercion for values crossing the
// handler boundary. Input handlers deal in `any` (YAML scalars, env strings);
// tracked constructs deal in concrete Go types. Coercion rules follow
// mapstructure's weakly-typed decoding, the same behavior the rest of the
// module uses for map binding.
package convert

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// To coerces v into T, tolerating the usual cross-type cases (string "42"
// into int, int into float64, "true" into bool).
func To[T any](v any) (T, error) {
	var out T
	if v == nil {
		return out, fmt.Errorf("cannot convert nil to %T", out)
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(v); err != nil {
		return out, fmt.Errorf("cannot convert %T to %T: %w", v, out, err)
	}
	return out, nil
}

// ToType coerces v into a fresh value of type t, returned as any.
func ToType(v any, t reflect.Type) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot convert nil to %s", t)
	}
	if reflect.TypeOf(v) == t {
		return v, nil
	}
	out := reflect.New(t)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out.Interface(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("cannot convert %T to %s: %w", v, t, err)
	}
	return out.Elem().Interface(), nil
}
