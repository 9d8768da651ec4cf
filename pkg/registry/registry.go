// Package registry implements the ordered handler chains at the heart of
// hooksett. Every tracked construct (field, parameter, local binding) routes
// value acquisition through Resolve/Validate and value delivery through
// Notify, without knowing which handlers are installed.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/hooksett/internal/logging"
	"github.com/aretw0/hooksett/pkg/domain"
)

// InputHandler supplies missing values and/or validates any value before it
// is accepted.
//
// Load returns (value, true, nil) when the handler has a value for name,
// (nil, false, nil) when it does not (the chain moves on), or an error to
// abort resolution. Validate may transform the value; returning an error
// rejects it.
type InputHandler interface {
	Load(name string, role domain.Role) (any, bool, error)
	Validate(name string, value any, role domain.Role) (any, error)
}

// OutputHandler observes every value a tracked variable receives.
type OutputHandler interface {
	Save(name string, value any, role domain.Role) error
}

// Registry holds the ordered input and output handler chains. Construct one
// with New and pass it explicitly into every tracked construct; there is no
// process-wide instance.
//
// Registration is append-only and expected to finish during initialization,
// before concurrent use begins. Resolve, Validate and Notify run synchronously
// on the caller's goroutine; blocking I/O belongs to individual handlers.
type Registry struct {
	mu      sync.RWMutex
	inputs  []InputHandler
	outputs []OutputHandler

	roles   *domain.Roles
	log     *slog.Logger
	isolate bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a structured logger. Default is a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRoles injects a custom role registry. Default is domain.Default().
func WithRoles(roles *domain.Roles) Option {
	return func(r *Registry) {
		if roles != nil {
			r.roles = roles
		}
	}
}

// WithIsolatedOutputs makes Notify log-and-continue when an output handler
// fails, instead of stopping the chain and propagating the fault.
func WithIsolatedOutputs() Option {
	return func(r *Registry) {
		r.isolate = true
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		roles: domain.Default(),
		log:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddInput appends an input handler. Insertion order is priority order for
// Load, and execution order for Validate.
func (r *Registry) AddInput(h InputHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, h)
}

// AddOutput appends an output handler.
func (r *Registry) AddOutput(h OutputHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs = append(r.outputs, h)
}

// HasInputs reports whether at least one input handler is registered.
func (r *Registry) HasInputs() bool {
	return r.Inputs() > 0
}

// Inputs returns the number of registered input handlers.
func (r *Registry) Inputs() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.inputs)
}

// Outputs returns the number of registered output handlers.
func (r *Registry) Outputs() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.outputs)
}

// Roles returns the role registry this registry reports against.
func (r *Registry) Roles() *domain.Roles {
	return r.roles
}

// Resolve obtains a value for name by asking each input handler's Load in
// priority order and taking the first non-absent result. The result is then
// passed through every handler's Validate, in order, regardless of which
// handler supplied it, so cross-cutting policies apply uniformly.
//
// Returns domain.ErrNoHandlers when the chain is empty and domain.ErrUnresolved
// when it is exhausted without a value.
func (r *Registry) Resolve(name string, role domain.Role) (any, error) {
	r.mu.RLock()
	inputs := r.inputs
	r.mu.RUnlock()

	if len(inputs) == 0 {
		return nil, fmt.Errorf("resolve %q: %w", name, domain.ErrNoHandlers)
	}

	var (
		value any
		found bool
	)
	for _, h := range inputs {
		v, ok, err := h.Load(name, role)
		if err != nil {
			return nil, fmt.Errorf("load %q (role %s): %w", name, r.roles.Name(role), err)
		}
		if ok {
			value, found = v, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf(
			"resolve %q (role %s): %w; provide a default value or configure a handler that knows it",
			name, r.roles.Name(role), domain.ErrUnresolved)
	}

	r.log.Debug("value resolved", "name", name, "role", r.roles.Name(role))
	return r.Validate(name, value, role)
}

// Validate runs value through every input handler's Validate in order,
// threading transformations. The first rejection aborts the rest of the
// chain; the returned error matches domain.ErrValidation.
func (r *Registry) Validate(name string, value any, role domain.Role) (any, error) {
	r.mu.RLock()
	inputs := r.inputs
	r.mu.RUnlock()

	for _, h := range inputs {
		v, err := h.Validate(name, value, role)
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				err = fmt.Errorf("%w: %w", domain.ErrValidation, err)
			}
			return nil, fmt.Errorf("validate %q: %w", name, err)
		}
		value = v
	}
	return value, nil
}

// Notify reports a received value to every output handler in order.
//
// By default a failing handler stops the chain and its fault propagates to
// the caller. With WithIsolatedOutputs the failure is logged and the
// remaining handlers still run.
func (r *Registry) Notify(name string, value any, role domain.Role) error {
	r.mu.RLock()
	outputs := r.outputs
	r.mu.RUnlock()

	for _, h := range outputs {
		if err := h.Save(name, value, role); err != nil {
			if r.isolate {
				r.log.Warn("output handler failed", "name", name, "error", err)
				continue
			}
			return fmt.Errorf("save %q: %w", name, err)
		}
	}
	return nil
}
