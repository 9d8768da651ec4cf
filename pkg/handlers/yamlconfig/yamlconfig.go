// Package yamlconfig provides a file-backed input handler: values are read
// from a YAML document once at construction and served by name. It performs
// no validation of its own.
package yamlconfig

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/hooksett/internal/logging"
	"github.com/aretw0/hooksett/pkg/domain"
)

// Handler serves tracked values from a parsed YAML mapping.
type Handler struct {
	values map[string]any
	log    *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets a structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// New reads and parses the YAML file at path. The document must be a mapping
// at the top level.
func New(path string, opts ...Option) (*Handler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlconfig: read %s: %w", path, err)
	}
	h, err := FromBytes(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("yamlconfig: parse %s: %w", path, err)
	}
	h.log.Debug("config loaded", "path", path, "keys", len(h.values))
	return h, nil
}

// FromBytes parses an in-memory YAML document.
func FromBytes(data []byte, opts ...Option) (*Handler, error) {
	h := &Handler{log: logging.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	if err := yaml.Unmarshal(data, &h.values); err != nil {
		return nil, err
	}
	if h.values == nil {
		h.values = make(map[string]any)
	}
	return h, nil
}

// Load serves the value stored under name, absent when the document has none.
func (h *Handler) Load(name string, role domain.Role) (any, bool, error) {
	v, ok := h.values[name]
	if ok {
		h.log.Debug("value served from config", "name", name)
	}
	return v, ok, nil
}

// Validate passes values through; this handler only loads.
func (h *Handler) Validate(name string, value any, role domain.Role) (any, error) {
	return value, nil
}
