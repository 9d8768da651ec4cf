package scan

import "github.com/aretw0/hooksett/pkg/domain"

// Decl is one tracked local-binding declaration discovered by the scanner.
type Decl struct {
	domain.Declaration

	// Func is the enclosing function's name ("func literal" for closures).
	Func string
	// File and Line locate the declaring constructor call; Line is the first
	// line of the call expression, the one runtime.Caller reports from inside
	// the constructor.
	File string
	Line int
}

// Table is the local-tracking table for one callable: every role-tagged local
// declaration in its body, in source order, indexed by declaration site.
type Table struct {
	decls  []Decl
	byLine map[int]int
}

var emptyTable = &Table{}

// Empty reports whether the callable has no tracked locals. Parse failures
// also yield an empty table; instrumentation never fails the callable.
func (t *Table) Empty() bool {
	return t == nil || len(t.decls) == 0
}

// Decls returns the declarations in source order.
func (t *Table) Decls() []Decl {
	if t == nil {
		return nil
	}
	return t.decls
}

// At returns the declaration whose constructor call covers the given source
// position.
func (t *Table) At(file string, line int) (Decl, bool) {
	if t == nil {
		return Decl{}, false
	}
	i, ok := t.byLine[line]
	if !ok || t.decls[i].File != file {
		return Decl{}, false
	}
	return t.decls[i], true
}

func (t *Table) add(d Decl, firstLine, lastLine int) {
	if t.byLine == nil {
		t.byLine = make(map[int]int)
	}
	t.decls = append(t.decls, d)
	for line := firstLine; line <= lastLine; line++ {
		t.byLine[line] = len(t.decls) - 1
	}
}
