package processor

import (
	"fmt"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/objects"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// ObjectElement adapts an objects.Object (the cursor abstraction of
// spec §4.6) into an elements.Element so a typetable.Type's
// NewInstance can return it through the same interface every other
// declared type uses, grounded on the original's Object deriving from
// Element (dtsengine.hh).
type ObjectElement struct {
	objects.Object
	Name string
	Info ast.SourceInfo
}

func (o *ObjectElement) Value() value.Value         { return value.Null() }
func (o *ObjectElement) String() string             { return "object " + o.Name }
func (o *ObjectElement) ElemName() string           { return o.Name }
func (o *ObjectElement) TypeName() string           { return "object" }
func (o *ObjectElement) SourceInfo() ast.SourceInfo { return o.Info }

var _ elements.Element = (*ObjectElement)(nil)

// objectDeclType is the typetable.Type backing a DECLARE'd table/sql/
// view/procedure template (ast.ObjectDecl), grounded on
// pass1visitor.cc's Pass1Visitor::visit(DeclNode*) registering
// CustomTableType/CustomSqlType. Its first declared argument is always
// the connection to run against (the same position the anonymous
// table()/sql() template-operand form takes), and any remaining
// arguments bind as SQL parameters for DeclSql/DeclView/DeclProcedure
// (the source grammar for parameterised DECLAREs is not otherwise
// pinned down).
type objectDeclType struct {
	proc *Processor
	decl *ast.ObjectDecl
}

var _ typetable.Type = (*objectDeclType)(nil)

func (t *objectDeclType) ID() ast.Identifier { return t.decl.ID }
func (t *objectDeclType) Node() ast.Node     { return t.decl }
func (t *objectDeclType) Builtin() bool      { return false }

func (t *objectDeclType) NewInstance(args []value.Value, mode typetable.Mode) (elements.Element, error) {
	if len(args) < 1 {
		return nil, &RuntimeError{Message: fmt.Sprintf("object template %s requires a connection argument", t.decl.ID)}
	}

	conn, err := ResolveAs[*elements.Connection](t.proc.Global, ast.Identifier(args[0].Str()))
	if err != nil {
		return nil, err
	}

	dialect := objects.DialectFor(conn.DBC.Dialect)
	rest := args[1:]

	var obj objects.Object
	switch t.decl.DeclKind {
	case ast.DeclTable:
		obj = &objects.Table{Name: t.decl.Body, Conn: conn.DBC, Dialect: dialect, Mode: mode}
	case ast.DeclSql, ast.DeclView, ast.DeclProcedure:
		obj = &objects.Sql{Query: t.decl.Body, Conn: conn.DBC, Dialect: dialect, Args: rest, Mode: mode}
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unhandled decl kind %s", t.decl.DeclKind)}
	}

	return &ObjectElement{Object: obj, Name: t.decl.ID.String(), Info: t.decl.Info()}, nil
}

// templateResult is what resolveTemplate hands back to a task: the
// object to iterate/insert through, plus an optional finalize step run
// once the task has finished driving it (only objects.Compact needs
// one, to write its accumulated string back into the referenced
// variable).
type templateResult struct {
	Object   objects.Object
	finalize func(Context) error
}

// resolveTemplate resolves one of a TaskDecl's TmplArgs operands (spec
// §4.5's "one/two template operands") to a runtime object, grounded on
// visitors.cc's TemplateVisitor (resolves a template reference) and
// TemplateArgVisitor (collects call-style arguments). A bare
// *ast.IdExpr names a DECLARE'd template with no extra arguments; an
// *ast.FuncCallExpr is either one of the five anonymous built-in
// constructors (table/sql/genrange/expand/compact) or a call-style
// reference to a DECLARE'd template with bind arguments.
func resolveTemplate(proc *Processor, ctx Context, expr ast.Expr, mode typetable.Mode) (templateResult, error) {
	switch e := expr.(type) {
	case *ast.IdExpr:
		typ, err := proc.Types.Find(e.Name)
		if err != nil {
			return templateResult{}, &NotDeclaredError{ID: e.Name.String()}
		}

		elem, err := typ.NewInstance(nil, mode)
		if err != nil {
			return templateResult{}, err
		}

		obj, ok := elem.(objects.Object)
		if !ok {
			return templateResult{}, &InternalError{Message: fmt.Sprintf("%s is not an object template", e.Name)}
		}

		return templateResult{Object: obj}, nil

	case *ast.FuncCallExpr:
		return resolveTemplateCall(proc, ctx, e, mode)

	default:
		return templateResult{}, &InternalError{Message: "unsupported template operand expression"}
	}
}

func resolveTemplateCall(proc *Processor, ctx Context, e *ast.FuncCallExpr, mode typetable.Mode) (templateResult, error) {
	switch e.Name.Lower() {
	case "table":
		if len(e.Args) != 2 {
			return templateResult{}, &RuntimeError{Message: "table(conn, name) takes exactly 2 arguments"}
		}

		conn, err := resolveTemplateConn(proc, ctx, e.Args[0])
		if err != nil {
			return templateResult{}, err
		}

		name, err := Eval(ctx, proc, e.Args[1])
		if err != nil {
			return templateResult{}, err
		}

		return templateResult{Object: &objects.Table{
			Name: name.Str(), Conn: conn.DBC, Dialect: objects.DialectFor(conn.DBC.Dialect), Mode: mode,
		}}, nil

	case "sql":
		if len(e.Args) < 2 {
			return templateResult{}, &RuntimeError{Message: "sql(conn, query, ...) takes at least 2 arguments"}
		}

		conn, err := resolveTemplateConn(proc, ctx, e.Args[0])
		if err != nil {
			return templateResult{}, err
		}

		query, err := Eval(ctx, proc, e.Args[1])
		if err != nil {
			return templateResult{}, err
		}

		bindArgs, err := evalArgs(ctx, proc, e.Args[2:])
		if err != nil {
			return templateResult{}, err
		}

		return templateResult{Object: &objects.Sql{
			Query: query.Str(), Conn: conn.DBC, Dialect: objects.DialectFor(conn.DBC.Dialect),
			Args: bindArgs, Mode: mode,
		}}, nil

	case "genrange":
		if len(e.Args) != 3 {
			return templateResult{}, &RuntimeError{Message: "genrange(start, stop, step) takes exactly 3 arguments"}
		}

		nums, err := evalArgs(ctx, proc, e.Args)
		if err != nil {
			return templateResult{}, err
		}

		start, err := nums[0].AsInt()
		if err != nil {
			return templateResult{}, err
		}

		stop, err := nums[1].AsInt()
		if err != nil {
			return templateResult{}, err
		}

		step, err := nums[2].AsInt()
		if err != nil {
			return templateResult{}, err
		}

		return templateResult{Object: &objects.GenRange{Start: start, Stop: stop, Step: step}}, nil

	case "expand":
		if len(e.Args) != 2 {
			return templateResult{}, &RuntimeError{Message: "expand(value, sep) takes exactly 2 arguments"}
		}

		vals, err := evalArgs(ctx, proc, e.Args)
		if err != nil {
			return templateResult{}, err
		}

		return templateResult{Object: &objects.Expand{Value: vals[0].Str(), Sep: vals[1].Str()}}, nil

	case "compact":
		if len(e.Args) != 2 {
			return templateResult{}, &RuntimeError{Message: "compact(ref, sep) takes exactly 2 arguments"}
		}

		refExpr, ok := e.Args[0].(*ast.IdExpr)
		if !ok {
			return templateResult{}, &RuntimeError{Message: "compact's first argument must be a variable reference"}
		}

		sep, err := Eval(ctx, proc, e.Args[1])
		if err != nil {
			return templateResult{}, err
		}

		compact := &objects.Compact{Sep: sep.Str()}
		finalize := func(c Context) error {
			return assignVar(c, refExpr.Name, refExpr.Info(), compact.Result())
		}

		return templateResult{Object: compact, finalize: finalize}, nil

	default:
		typ, err := proc.Types.Find(e.Name)
		if err != nil {
			return templateResult{}, &NotDeclaredError{ID: e.Name.String()}
		}

		args, err := evalArgs(ctx, proc, e.Args)
		if err != nil {
			return templateResult{}, err
		}

		elem, err := typ.NewInstance(args, mode)
		if err != nil {
			return templateResult{}, err
		}

		obj, ok := elem.(objects.Object)
		if !ok {
			return templateResult{}, &InternalError{Message: fmt.Sprintf("%s is not an object template", e.Name)}
		}

		return templateResult{Object: obj}, nil
	}
}

// resolveTemplateConn evaluates a connection operand (normally a bare
// identifier) and resolves the string it yields back to the live
// elements.Connection, mirroring Connection::_value() returning its
// own id so an IdNode evaluation of a connection resolves indirectly
// through the global scope.
func resolveTemplateConn(proc *Processor, ctx Context, expr ast.Expr) (*elements.Connection, error) {
	v, err := Eval(ctx, proc, expr)
	if err != nil {
		return nil, err
	}

	return ResolveAs[*elements.Connection](ctx, ast.Identifier(v.Str()))
}

func evalArgs(ctx Context, proc *Processor, exprs []ast.Expr) ([]value.Value, error) {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := Eval(ctx, proc, e)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

// assignVar rebinds an existing variable in ctx's scope chain, or (if
// undeclared) adds it to ctx's own scope, the write-back path
// objects.Compact's finalize step and AssignStmt share.
func assignVar(ctx Context, name ast.Identifier, info ast.SourceInfo, v value.Value) error {
	elem := elements.NewValueElement(name.String(), info, v)
	if err := ctx.Symbols().Set(name, elem); err != nil {
		_, err := ctx.Symbols().Add(name, elem)
		return err
	}

	return nil
}
