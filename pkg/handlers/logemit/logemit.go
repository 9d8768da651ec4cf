// Package logemit provides an output handler that emits one structured log
// record per tracked value received.
package logemit

import (
	"context"
	"log/slog"

	"github.com/aretw0/hooksett/pkg/domain"
)

// Handler logs every save with the value's name, role and content.
type Handler struct {
	log   *slog.Logger
	roles *domain.Roles
	level slog.Level
}

// Option configures a Handler.
type Option func(*Handler)

// WithRoles sets the role registry used to render role names.
func WithRoles(roles *domain.Roles) Option {
	return func(h *Handler) {
		if roles != nil {
			h.roles = roles
		}
	}
}

// WithLevel sets the log level for emitted records. Default is Info.
func WithLevel(level slog.Level) Option {
	return func(h *Handler) {
		h.level = level
	}
}

// New creates a handler writing through the given logger.
func New(log *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		log:   log,
		roles: domain.Default(),
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Save emits one record. It never fails.
func (h *Handler) Save(name string, value any, role domain.Role) error {
	h.log.Log(context.Background(), h.level, "tracked value",
		"name", name,
		"role", h.roles.Name(role),
		"value", value,
	)
	return nil
}
