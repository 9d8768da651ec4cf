// Package promsink provides an output handler that exports tracked values as
// Prometheus metrics: metric-role values feed a gauge vector and every save,
// whatever the role, increments a counter vector.
package promsink

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/hooksett/internal/convert"
	"github.com/aretw0/hooksett/pkg/domain"
)

// Handler bridges tracked values into a prometheus.Registerer.
type Handler struct {
	roles  *domain.Roles
	values *prometheus.GaugeVec
	saves  *prometheus.CounterVec
}

// Option configures a Handler.
type Option func(*Handler)

// WithRoles sets the role registry used for label rendering.
func WithRoles(roles *domain.Roles) Option {
	return func(h *Handler) {
		if roles != nil {
			h.roles = roles
		}
	}
}

// New creates a handler and registers its collectors with reg.
func New(reg prometheus.Registerer, opts ...Option) (*Handler, error) {
	h := &Handler{
		roles: domain.Default(),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hooksett",
			Name:      "tracked_value",
			Help:      "Latest value of each numeric metric-role tracked variable.",
		}, []string{"name"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hooksett",
			Name:      "saves_total",
			Help:      "Number of values each tracked variable has received.",
		}, []string{"name", "role"}),
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := reg.Register(h.values); err != nil {
		return nil, fmt.Errorf("promsink: %w", err)
	}
	if err := reg.Register(h.saves); err != nil {
		return nil, fmt.Errorf("promsink: %w", err)
	}
	return h, nil
}

// Save counts the delivery and, for numeric metric-role values, updates the
// gauge. Non-numeric metrics are counted but not gauged.
func (h *Handler) Save(name string, value any, role domain.Role) error {
	h.saves.WithLabelValues(name, h.roles.Name(role)).Inc()

	if role != domain.RoleMetric {
		return nil
	}
	f, err := convert.To[float64](value)
	if err != nil {
		return nil
	}
	h.values.WithLabelValues(name).Set(f)
	return nil
}
