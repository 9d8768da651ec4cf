// Package scan discovers tracked local-binding declarations by parsing Go
// source. It is the static half of the local binding tracker: given a
// callable, it produces the table of (name, role, has-default) declarations
// inside the body, built once per callable and cached.
//
// Any failure to obtain or parse source degrades to an empty table, never an
// error: instrumentation must not alter a callable's behavior.
package scan

import (
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/hooksett/internal/logging"
	"github.com/aretw0/hooksett/pkg/domain"
)

// localImportSuffix identifies imports of the declaration package, whatever
// the module path prefix.
const localImportSuffix = "hooksett/pkg/local"

// taggedCtor is the constructor form carrying an explicit role name for
// custom roles: local.Tagged("Hyper", v).
const taggedCtor = "Tagged"

// Scanner parses source files and extracts local-tracking tables. It caches
// parsed files and extracted tables; a Scanner is safe for concurrent use.
type Scanner struct {
	log *slog.Logger

	mu     sync.Mutex
	files  map[string]*fileInfo
	tables map[tableKey]*Table
}

type tableKey struct {
	file  string
	start int
	roles *domain.Roles
}

// fileInfo is the parse result for one source file. A nil entry in the cache
// records a failed parse so it is not retried.
type fileInfo struct {
	fset    *token.FileSet
	aliases map[string]bool // identifiers referring to the local package
	funcs   []funcSpan
}

type funcSpan struct {
	name       string
	start, end int
	body       *ast.BlockStmt
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for degrade diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		log:    logging.NewNop(),
		files:  make(map[string]*fileInfo),
		tables: make(map[tableKey]*Table),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TableForFunc returns the tracking table for the function value fn.
func (s *Scanner) TableForFunc(roles *domain.Roles, fn any) *Table {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return emptyTable
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return emptyTable
	}
	file, line := f.FileLine(rv.Pointer())
	return s.tableAt(roles, file, line)
}

// TableForCaller returns the tracking table for the function enclosing the
// caller's caller, skip frames up.
func (s *Scanner) TableForCaller(roles *domain.Roles, skip int) *Table {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return emptyTable
	}
	return s.tableAt(roles, file, line)
}

func (s *Scanner) tableAt(roles *domain.Roles, file string, line int) *Table {
	info := s.fileFor(file)
	if info == nil {
		return emptyTable
	}

	span, ok := innermost(info.funcs, line)
	if !ok {
		return emptyTable
	}

	key := tableKey{file: file, start: span.start, roles: roles}
	s.mu.Lock()
	if t, hit := s.tables[key]; hit {
		s.mu.Unlock()
		return t
	}
	s.mu.Unlock()

	t := extract(info, span, file, roles)

	s.mu.Lock()
	s.tables[key] = t
	s.mu.Unlock()
	return t
}

// ScanFile parses one source file and returns every tracked declaration in
// it, in source order. Unlike the table lookups, this surfaces parse errors;
// it backs the CLI, not the runtime path.
func (s *Scanner) ScanFile(roles *domain.Roles, path string) ([]Decl, error) {
	fset := token.NewFileSet()
	fileAST, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	return declsFromAST(fset, fileAST, path, roles, false), nil
}

// ScanSnippet parses a source fragment, dedenting it first and wrapping it in
// a synthetic package and function when it is not a complete file. Bare
// bodies carry no import table, so the conventional package name "local" is
// assumed for them.
func (s *Scanner) ScanSnippet(roles *domain.Roles, src string) ([]Decl, error) {
	src = Dedent(src)
	trimmed := strings.TrimSpace(src)

	fset := token.NewFileSet()
	wrapped := false
	if !strings.HasPrefix(trimmed, "package ") {
		src = "package snippet\n\nfunc _() {\n" + src + "\n}\n"
		wrapped = true
	}
	fileAST, err := parser.ParseFile(fset, "snippet.go", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	return declsFromAST(fset, fileAST, "snippet.go", roles, wrapped), nil
}

func (s *Scanner) fileFor(path string) *fileInfo {
	s.mu.Lock()
	info, hit := s.files[path]
	s.mu.Unlock()
	if hit {
		return info
	}

	info = parseFile(path)
	if info == nil {
		s.log.Debug("source scan degraded to no tracked locals", "file", path)
	}

	s.mu.Lock()
	s.files[path] = info
	s.mu.Unlock()
	return info
}

func parseFile(path string) *fileInfo {
	fset := token.NewFileSet()
	fileAST, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil
	}

	info := &fileInfo{
		fset:    fset,
		aliases: localAliases(fileAST),
	}
	ast.Inspect(fileAST, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			if fn.Body != nil {
				info.funcs = append(info.funcs, funcSpan{
					name:  fn.Name.Name,
					start: fset.Position(fn.Pos()).Line,
					end:   fset.Position(fn.End()).Line,
					body:  fn.Body,
				})
			}
		case *ast.FuncLit:
			info.funcs = append(info.funcs, funcSpan{
				name:  "func literal",
				start: fset.Position(fn.Pos()).Line,
				end:   fset.Position(fn.End()).Line,
				body:  fn.Body,
			})
		}
		return true
	})
	return info
}

// localAliases collects the identifiers under which the local package is
// imported in this file.
func localAliases(fileAST *ast.File) map[string]bool {
	aliases := make(map[string]bool)
	for _, imp := range fileAST.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || !strings.HasSuffix(path, localImportSuffix) {
			continue
		}
		name := "local"
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		aliases[name] = true
	}
	return aliases
}

// innermost picks the smallest function span containing line.
func innermost(funcs []funcSpan, line int) (funcSpan, bool) {
	var (
		best  funcSpan
		found bool
	)
	for _, span := range funcs {
		if line < span.start || line > span.end {
			continue
		}
		if !found || span.end-span.start < best.end-best.start {
			best, found = span, true
		}
	}
	return best, found
}

// extract walks one function body for tracked declarations, not descending
// into nested function literals: their locals belong to their own invocations.
func extract(info *fileInfo, span funcSpan, file string, roles *domain.Roles) *Table {
	t := &Table{}
	ast.Inspect(span.body, func(n ast.Node) bool {
		if lit, ok := n.(*ast.FuncLit); ok && lit.Body != span.body {
			return false
		}

		name, call := declCandidate(n)
		if call == nil {
			return true
		}
		role, hasDefault, ok := roleOfCall(call, info.aliases, roles)
		if !ok {
			return true
		}

		first := info.fset.Position(call.Pos()).Line
		last := info.fset.Position(call.End()).Line
		t.add(Decl{
			Declaration: domain.Declaration{
				Owner:      domain.OwnerLocal,
				Name:       name,
				Role:       role,
				HasDefault: hasDefault,
			},
			Func: span.name,
			File: file,
			Line: first,
		}, first, last)
		return true
	})
	if t.Empty() {
		return emptyTable
	}
	return t
}

func declsFromAST(fset *token.FileSet, fileAST *ast.File, path string, roles *domain.Roles, assumeLocal bool) []Decl {
	aliases := localAliases(fileAST)
	if assumeLocal && len(aliases) == 0 {
		aliases["local"] = true
	}
	info := &fileInfo{fset: fset, aliases: aliases}
	ast.Inspect(fileAST, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			if fn.Body != nil {
				info.funcs = append(info.funcs, funcSpan{
					name:  fn.Name.Name,
					start: fset.Position(fn.Pos()).Line,
					end:   fset.Position(fn.End()).Line,
					body:  fn.Body,
				})
			}
		case *ast.FuncLit:
			info.funcs = append(info.funcs, funcSpan{
				name:  "func literal",
				start: fset.Position(fn.Pos()).Line,
				end:   fset.Position(fn.End()).Line,
				body:  fn.Body,
			})
		}
		return true
	})

	var out []Decl
	for _, span := range info.funcs {
		out = append(out, extract(info, span, path, roles).Decls()...)
	}
	return out
}

// declCandidate recognizes the two declaration shapes:
//
//	name := local.Role(...)
//	var name = local.Role(...)
func declCandidate(n ast.Node) (string, *ast.CallExpr) {
	switch stmt := n.(type) {
	case *ast.AssignStmt:
		if stmt.Tok != token.DEFINE || len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
			return "", nil
		}
		ident, ok := stmt.Lhs[0].(*ast.Ident)
		if !ok {
			return "", nil
		}
		call, ok := stmt.Rhs[0].(*ast.CallExpr)
		if !ok {
			return "", nil
		}
		return ident.Name, call
	case *ast.DeclStmt:
		gen, ok := stmt.Decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR || len(gen.Specs) != 1 {
			return "", nil
		}
		spec, ok := gen.Specs[0].(*ast.ValueSpec)
		if !ok || len(spec.Names) != 1 || len(spec.Values) != 1 {
			return "", nil
		}
		call, ok := spec.Values[0].(*ast.CallExpr)
		if !ok {
			return "", nil
		}
		return spec.Names[0].Name, call
	}
	return "", nil
}

// roleOfCall decides whether the call is a tracked-local constructor and
// which role it carries. Constructor names are resolved against the role
// registry, so user-registered roles are recognized only through the Tagged
// form.
func roleOfCall(call *ast.CallExpr, aliases map[string]bool, roles *domain.Roles) (domain.Role, bool, bool) {
	fun := call.Fun
	// Unwrap explicit generic instantiation: local.Metric[float64](v).
	switch idx := fun.(type) {
	case *ast.IndexExpr:
		fun = idx.X
	case *ast.IndexListExpr:
		fun = idx.X
	}
	sel, ok := fun.(*ast.SelectorExpr)
	if !ok {
		return 0, false, false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || !aliases[pkg.Name] {
		return 0, false, false
	}

	if sel.Sel.Name == taggedCtor {
		if len(call.Args) == 0 {
			return 0, false, false
		}
		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return 0, false, false
		}
		name, err := strconv.Unquote(lit.Value)
		if err != nil {
			return 0, false, false
		}
		role, known := roles.ByName(name)
		if !known {
			return 0, false, false
		}
		return role, len(call.Args) >= 2, true
	}

	role, known := roles.ByName(sel.Sel.Name)
	if !known {
		return 0, false, false
	}
	return role, len(call.Args) >= 1, true
}
