// Package redistrack persists tracked values to Redis. Each run gets its own
// hash keyed by run id, so several processes can report into the same server
// without clobbering one another.
package redistrack

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/hooksett/pkg/domain"
)

const defaultPrefix = "hooksett:run:"

// Handler is an output handler writing values into a Redis hash.
type Handler struct {
	client  *backend.Client
	roles   *domain.Roles
	prefix  string
	runID   string
	timeout time.Duration
	ttl     time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithPrefix overrides the key prefix (default "hooksett:run:").
func WithPrefix(prefix string) Option {
	return func(h *Handler) { h.prefix = prefix }
}

// WithRoles sets the role registry used to render role field names.
func WithRoles(roles *domain.Roles) Option {
	return func(h *Handler) {
		if roles != nil {
			h.roles = roles
		}
	}
}

// WithTimeout bounds each Redis round-trip (default 5s).
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) { h.timeout = d }
}

// WithTTL expires the run hash after d. Zero means no expiry.
func WithTTL(d time.Duration) Option {
	return func(h *Handler) { h.ttl = d }
}

// New creates a handler writing into the hash for runID using client.
func New(client *backend.Client, runID string, opts ...Option) *Handler {
	h := &Handler{
		client:  client,
		roles:   domain.Default(),
		prefix:  defaultPrefix,
		runID:   runID,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Key returns the full Redis key this handler writes to.
func (h *Handler) Key() string {
	return h.prefix + h.runID
}

// Save stores the value and its role under the variable's name. Values are
// stringified the way go-redis renders arguments, so numbers stay readable.
func (h *Handler) Save(name string, value any, role domain.Role) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	key := h.Key()
	if err := h.client.HSet(ctx, key,
		name, fmt.Sprint(value),
		name+":role", h.roles.Name(role),
	).Err(); err != nil {
		return fmt.Errorf("redistrack: save %q: %w", name, err)
	}
	if h.ttl > 0 {
		if err := h.client.Expire(ctx, key, h.ttl).Err(); err != nil {
			return fmt.Errorf("redistrack: expire %q: %w", key, err)
		}
	}
	return nil
}
