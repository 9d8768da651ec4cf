// Package envconfig provides an input handler that serves tracked values from
// environment variables. A tracked name maps to PREFIX_NAME upper-cased, so
// "learning_rate" with prefix "TRAIN" reads TRAIN_LEARNING_RATE. Values are
// served as strings; downstream coercion turns them into declared types.
package envconfig

import (
	"os"
	"strings"

	"github.com/aretw0/hooksett/pkg/domain"
)

// Handler reads tracked values from the process environment.
type Handler struct {
	prefix string
	lookup func(string) (string, bool)
}

// Option configures a Handler.
type Option func(*Handler)

// WithLookup replaces os.LookupEnv, for tests.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(h *Handler) {
		if fn != nil {
			h.lookup = fn
		}
	}
}

// New creates a handler with the given variable prefix. An empty prefix reads
// bare upper-cased names.
func New(prefix string, opts ...Option) *Handler {
	h := &Handler{
		prefix: prefix,
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Key returns the environment variable name for a tracked name.
func (h *Handler) Key(name string) string {
	key := strings.ToUpper(name)
	if h.prefix != "" {
		key = strings.ToUpper(h.prefix) + "_" + key
	}
	return key
}

// Load serves the environment value, absent when the variable is unset.
func (h *Handler) Load(name string, role domain.Role) (any, bool, error) {
	v, ok := h.lookup(h.Key(name))
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Validate passes values through; this handler only loads.
func (h *Handler) Validate(name string, value any, role domain.Role) (any, error) {
	return value, nil
}
