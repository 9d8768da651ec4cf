// Package rangecheck provides a validating input handler that bounds numeric
// tracked values. It never supplies a value of its own.
package rangecheck

import (
	"fmt"

	"github.com/aretw0/hooksett/internal/convert"
	"github.com/aretw0/hooksett/pkg/domain"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min, Max float64
}

// Handler rejects values outside their declared range. Names without a
// declared range pass through untouched.
type Handler struct {
	ranges map[string]Range
}

// New creates a handler bounding the given names.
func New(ranges map[string]Range) *Handler {
	return &Handler{ranges: ranges}
}

// Load is always absent; this handler only validates.
func (h *Handler) Load(name string, role domain.Role) (any, bool, error) {
	return nil, false, nil
}

// Validate checks the value against the declared range for name. A value
// that cannot be read as a number is rejected too: a range declaration is a
// numeric contract.
func (h *Handler) Validate(name string, value any, role domain.Role) (any, error) {
	r, bounded := h.ranges[name]
	if !bounded {
		return value, nil
	}

	f, err := convert.To[float64](value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has a declared range but a non-numeric value %v", domain.ErrValidation, name, value)
	}
	if f < r.Min || f > r.Max {
		return nil, fmt.Errorf("%w: %s value %v must be between %v and %v", domain.ErrValidation, name, value, r.Min, r.Max)
	}
	return value, nil
}
