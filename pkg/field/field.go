// Package field implements tracked object fields as explicit property cells:
// a Field carries its own getter/setter pair instead of trapping attribute
// access at runtime. Embed Field values in a struct (one per instance) to get
// per-instance caching.
package field

import (
	"fmt"

	"github.com/aretw0/hooksett/internal/convert"
	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/aretw0/hooksett/pkg/registry"
)

// Field is a lazily resolved, per-instance tracked value.
//
// A Field without a default resolves through the registry's input handler
// chain on first Get and caches the result; later reads touch no handlers.
// A Field with a default serves the default without consulting any handler
// until it is explicitly Set.
//
// Fields are not synchronized; concurrent first reads of the same
// uninitialized Field are undefined. Resolve fields during initialization or
// guard them externally.
type Field[T any] struct {
	reg  *registry.Registry
	decl domain.Declaration

	val      T
	resolved bool
}

// New declares a tracked field with no default. The first Get resolves it.
func New[T any](reg *registry.Registry, name string, role domain.Role) *Field[T] {
	return &Field[T]{
		reg: reg,
		decl: domain.Declaration{
			Owner: domain.OwnerField,
			Name:  name,
			Role:  role,
		},
	}
}

// WithDefault declares a tracked field that serves def until explicitly Set.
func WithDefault[T any](reg *registry.Registry, name string, role domain.Role, def T) *Field[T] {
	f := New[T](reg, name, role)
	f.decl.HasDefault = true
	f.decl.Default = def
	f.val = def
	f.resolved = true
	return f
}

// Name returns the field's declared name.
func (f *Field[T]) Name() string { return f.decl.Name }

// Role returns the field's role tag.
func (f *Field[T]) Role() domain.Role { return f.decl.Role }

// Get returns the field's value, resolving and caching it on first read when
// no default was declared.
func (f *Field[T]) Get() (T, error) {
	if f.resolved {
		return f.val, nil
	}

	var zero T
	if !f.reg.HasInputs() {
		return zero, fmt.Errorf(
			"field %q requires a value: %w; register input handlers, declare a default, or Set it explicitly",
			f.decl.Name, domain.ErrNoHandlers)
	}

	raw, err := f.reg.Resolve(f.decl.Name, f.decl.Role)
	if err != nil {
		return zero, fmt.Errorf("field %q: %w", f.decl.Name, err)
	}
	v, err := convert.To[T](raw)
	if err != nil {
		return zero, fmt.Errorf("field %q: %w", f.decl.Name, err)
	}

	f.val = v
	f.resolved = true
	return f.val, nil
}

// MustGet is Get for initialization paths where a missing value is fatal.
func (f *Field[T]) MustGet() T {
	v, err := f.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Set validates v through every input handler (no load is attempted), stores
// it, then notifies every output handler exactly once.
func (f *Field[T]) Set(v T) error {
	validated, err := f.reg.Validate(f.decl.Name, v, f.decl.Role)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.decl.Name, err)
	}
	typed, err := convert.To[T](validated)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.decl.Name, err)
	}

	f.val = typed
	f.resolved = true

	if err := f.reg.Notify(f.decl.Name, typed, f.decl.Role); err != nil {
		return fmt.Errorf("field %q: %w", f.decl.Name, err)
	}
	return nil
}
