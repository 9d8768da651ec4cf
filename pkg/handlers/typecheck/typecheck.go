// Package typecheck provides a validating input handler that enforces
// declared Go types on tracked values. Values from loosely typed sources
// (YAML scalars, environment strings) are coerced into the declared type
// when a safe weak conversion exists; incompatible values are rejected.
package typecheck

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/aretw0/hooksett/internal/convert"
	"github.com/aretw0/hooksett/pkg/domain"
)

// Handler coerces and checks values against declared types.
type Handler struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// New creates a handler with no declarations; names without a declared type
// pass through untouched.
func New() *Handler {
	return &Handler{types: make(map[string]reflect.Type)}
}

// Declare registers the expected type for a tracked name, given as a
// prototype value: Declare("learning_rate", float64(0)).
func (h *Handler) Declare(name string, prototype any) *Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.types[name] = reflect.TypeOf(prototype)
	return h
}

// Load is always absent; this handler only validates.
func (h *Handler) Load(name string, role domain.Role) (any, bool, error) {
	return nil, false, nil
}

// Validate coerces value into the declared type for name, rejecting values
// that cannot be represented.
func (h *Handler) Validate(name string, value any, role domain.Role) (any, error) {
	h.mu.RLock()
	want, declared := h.types[name]
	h.mu.RUnlock()
	if !declared {
		return value, nil
	}

	coerced, err := convert.ToType(value, want)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be of type %s, got %T", domain.ErrValidation, name, want, value)
	}
	return coerced, nil
}
