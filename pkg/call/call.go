// Package call wraps callables whose parameters are tracked. At invocation
// the wrapper binds arguments, resolves or validates every tracked parameter
// through the registry's input handler chain, reports each final value
// exactly once, and only then runs the body. The body's tracked locals are
// captured through pkg/local automatically.
package call

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/hooksett/internal/logging"
	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/aretw0/hooksett/pkg/local"
	"github.com/aretw0/hooksett/pkg/registry"
)

// Body is the wrapped callable's signature, mirroring the registry tool
// convention: a context plus bound arguments in, a result or error out.
type Body func(ctx context.Context, args Args) (any, error)

// absent is the designated sentinel for "no argument bound"; a tracked
// parameter holding it is resolved through the input handler chain.
type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent marks a parameter as explicitly unbound. Omitting the argument has
// the same effect.
var Absent = absent{}

// Param declares one parameter of a wrapped callable.
type Param struct {
	Name       string
	Role       domain.Role // RoleNone for ordinary parameters
	Default    any
	HasDefault bool
}

// P declares a parameter with no default.
func P(name string, role domain.Role) Param {
	return Param{Name: name, Role: role}
}

// WithDefault declares a parameter with a default value.
func WithDefault(name string, role domain.Role, def any) Param {
	return Param{Name: name, Role: role, Default: def, HasDefault: true}
}

// Func is a wrapped callable. Build one with Wrap once, invoke it any number
// of times; the local-tracking table for the body is computed at wrap time
// and cached.
type Func struct {
	reg    *registry.Registry
	body   Body
	params []Param
	table  local.Table
	log    *slog.Logger
}

// Option configures a Func.
type Option func(*Func)

// WithLogger sets a structured logger for invocation diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(f *Func) {
		if log != nil {
			f.log = log
		}
	}
}

// Wrap builds a tracked callable from a body and its parameter declarations.
func Wrap(reg *registry.Registry, body Body, params []Param, opts ...Option) *Func {
	if body == nil {
		panic("call: Wrap requires a non-nil body")
	}
	f := &Func{
		reg:    reg,
		body:   body,
		params: params,
		table:  local.TableFor(reg, body),
		log:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Call invokes the callable with named arguments.
func (f *Func) Call(ctx context.Context, named map[string]any) (any, error) {
	return f.invoke(ctx, nil, named)
}

// CallPositional invokes the callable with positional arguments bound in
// declaration order.
func (f *Func) CallPositional(ctx context.Context, vals ...any) (any, error) {
	return f.invoke(ctx, vals, nil)
}

// CallArgs invokes the callable with both positional and named arguments.
// A parameter bound both ways is an error.
func (f *Func) CallArgs(ctx context.Context, positional []any, named map[string]any) (any, error) {
	return f.invoke(ctx, positional, named)
}

func (f *Func) invoke(ctx context.Context, positional []any, named map[string]any) (out any, err error) {
	args, err := f.bind(positional, named)
	if err != nil {
		return nil, err
	}

	// Fail before any handler work if a tracked parameter needs resolution
	// and there is nothing to resolve it with.
	for _, p := range f.params {
		if p.Role != domain.RoleNone && isAbsent(args[p.Name]) && !f.reg.HasInputs() {
			return nil, fmt.Errorf("call: parameter %q must be resolved: %w", p.Name, domain.ErrNoHandlers)
		}
	}

	// Resolve-or-validate and report each tracked parameter, declaration
	// order, before the body runs.
	for _, p := range f.params {
		v := args[p.Name]
		if p.Role == domain.RoleNone {
			if isAbsent(v) {
				return nil, fmt.Errorf("call: missing argument %q", p.Name)
			}
			continue
		}

		if isAbsent(v) {
			v, err = f.reg.Resolve(p.Name, p.Role)
		} else {
			v, err = f.reg.Validate(p.Name, v, p.Role)
		}
		if err != nil {
			return nil, err
		}
		args[p.Name] = v

		if err := f.reg.Notify(p.Name, v, p.Role); err != nil {
			return nil, err
		}
		f.log.Debug("parameter bound", "name", p.Name, "role", f.reg.Roles().Name(p.Role))
	}

	stop := local.Capture(f.reg, f.table)
	defer func() {
		if ferr := stop(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	return f.body(ctx, args)
}

// bind merges positional and named arguments against the declared parameters,
// filling omissions with declared defaults and the Absent sentinel.
func (f *Func) bind(positional []any, named map[string]any) (Args, error) {
	if len(positional) > len(f.params) {
		return nil, fmt.Errorf("call: %d positional arguments for %d parameters", len(positional), len(f.params))
	}

	args := make(Args, len(f.params))
	for i, v := range positional {
		args[f.params[i].Name] = v
	}
	for name, v := range named {
		i := f.paramIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("call: unknown argument %q", name)
		}
		if i < len(positional) {
			return nil, fmt.Errorf("call: argument %q bound both positionally and by name", name)
		}
		args[name] = v
	}
	for _, p := range f.params {
		if _, bound := args[p.Name]; bound {
			continue
		}
		if p.HasDefault {
			args[p.Name] = p.Default
		} else {
			args[p.Name] = Absent
		}
	}
	return args, nil
}

func (f *Func) paramIndex(name string) int {
	for i, p := range f.params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func isAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}
