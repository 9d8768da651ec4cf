// Package local tracks role-tagged function-local bindings and reports each
// one exactly once per invocation, with its final value, when the invocation
// exits.
//
// A tracked local is declared through one of the role constructors:
//
//	accuracy := local.Metric(0.0)
//	batch := local.Parameter(32)
//
// and rebound through its Store method (last write wins, mirroring ordinary
// reassignment):
//
//	accuracy.Store(accuracy.Load() + delta)
//
// Which declarations are tracked is decided statically: the enclosing
// function's source is parsed once and cached, and the constructors match
// themselves against that table by call site. If the source cannot be parsed
// the function simply has no tracked locals; declarations still work as plain
// cells.
//
// Capture is driven either by call.Wrap or directly:
//
//	func train(reg *registry.Registry) {
//		stop := local.Track(reg)
//		defer stop()
//		...
//	}
//
// Nested and recursive invocations on one goroutine stack their capture
// frames, so an inner invocation reports its own locals without disturbing
// the outer one, even when names collide.
package local

import (
	"runtime"
	"sync"

	"github.com/aretw0/hooksett/internal/gls"
	"github.com/aretw0/hooksett/internal/scan"
	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/aretw0/hooksett/pkg/registry"
)

// scanner caches parsed files and per-callable tables for the whole process.
// It holds no policy, only parse results.
var scanner = scan.New()

// Table is the opaque local-tracking table for one callable.
type Table struct {
	t *scan.Table
}

// Empty reports whether the callable has no tracked locals.
func (t Table) Empty() bool {
	return t.t.Empty()
}

// TableFor builds (or fetches the cached) tracking table for fn, resolving
// constructor names against the registry's role registry.
func TableFor(reg *registry.Registry, fn any) Table {
	return Table{t: scanner.TableForFunc(reg.Roles(), fn)}
}

// frame is one invocation's capture accumulator.
type frame struct {
	reg    *registry.Registry
	table  *scan.Table
	values map[string]any
}

func (f *frame) bind(name string, value any) {
	f.values[name] = value
}

// flush reports each bound tracked name exactly once, in declaration order,
// with the value live at exit.
func (f *frame) flush() error {
	for _, d := range f.table.Decls() {
		v, bound := f.values[d.Name]
		if !bound {
			continue
		}
		if err := f.reg.Notify(d.Name, v, d.Role); err != nil {
			return err
		}
	}
	return nil
}

// Capture installs a capture frame for one invocation of the callable tbl
// describes. The returned stop function uninstalls the frame and flushes the
// captured final values; it is idempotent and must run on every exit path
// (defer it). When the table is empty no frame is installed and stop is a
// no-op.
//
// Captured values are flushed on error and panic exits too: a metric bound
// before a failure is still a fact worth reporting.
func Capture(reg *registry.Registry, tbl Table) (stop func() error) {
	if tbl.Empty() {
		return func() error { return nil }
	}

	fr := &frame{
		reg:    reg,
		table:  tbl.t,
		values: make(map[string]any),
	}
	gls.Push(fr)

	var (
		once sync.Once
		err  error
	)
	return func() error {
		once.Do(func() {
			gls.Pop()
			err = fr.flush()
		})
		return err
	}
}

// Track scans the calling function and installs a capture frame for the
// current invocation:
//
//	stop := local.Track(reg)
//	defer stop()
func Track(reg *registry.Registry) (stop func() error) {
	return Capture(reg, Table{t: scanner.TableForCaller(reg.Roles(), 1)})
}

// Var is a tracked local binding: a cell whose writes are observed by the
// invocation's capture frame. An untracked Var (no active frame, unparsable
// source, or an unknown role) is a plain cell.
type Var[T any] struct {
	fr   *frame
	name string
	role domain.Role
	val  T
}

// Parameter declares a local with the configuration-parameter role.
func Parameter[T any](v T) *Var[T] { return declare(v) }

// Metric declares a local with the metric role.
func Metric[T any](v T) *Var[T] { return declare(v) }

// Artifact declares a local with the artifact role.
func Artifact[T any](v T) *Var[T] { return declare(v) }

// Traced declares a generically traced local.
func Traced[T any](v T) *Var[T] { return declare(v) }

// Tagged declares a local with a custom role, identified by its registered
// display name. The name must be a string literal at the declaration site;
// the scanner resolves it against the role registry.
func Tagged[T any](role string, v T) *Var[T] {
	_ = role // consumed statically by the scanner
	return declare(v)
}

func declare[T any](v T) *Var[T] {
	cell := &Var[T]{val: v}

	fr, ok := gls.Top().(*frame)
	if !ok || fr == nil {
		return cell
	}
	// Two frames up: declare -> role constructor -> declaration site.
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return cell
	}
	d, tracked := fr.table.At(file, line)
	if !tracked {
		return cell
	}

	cell.fr = fr
	cell.name = d.Name
	cell.role = d.Role
	fr.bind(d.Name, v)
	return cell
}

// Store rebinds the local. For a tracked Var the capture frame records the
// value, overwriting any earlier one.
func (v *Var[T]) Store(x T) {
	v.val = x
	if v.fr != nil {
		v.fr.bind(v.name, x)
	}
}

// Load returns the current binding.
func (v *Var[T]) Load() T {
	return v.val
}

// Tracked reports whether writes to this Var are observed.
func (v *Var[T]) Tracked() bool {
	return v.fr != nil
}
