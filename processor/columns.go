package processor

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
)

// collectColumns walks a task phase's statements for $col references,
// splitting them into the left list (column-assign targets, wired into
// the destination object's column list) and the right list (every
// other $col read, wired into the source object's column list),
// grounded on visitors.cc's ColumnVisitor/DeepColumnVisitor split:
// ColumnAssignNode recurses its LHS into left_list and RHS into
// right_list; every other statement recurses its full subtree into
// right_list only. %col references are ignored here — see
// collectResultColumns.
func collectColumns(stmts []ast.Stmt) (left, right []elements.Column) {
	seenL := map[string]bool{}
	seenR := map[string]bool{}

	for _, s := range stmts {
		walkStmtForColumns(s, &left, &right, seenL, seenR)
	}

	return left, right
}

func walkStmtForColumns(s ast.Stmt, left, right *[]elements.Column, seenL, seenR map[string]bool) {
	switch st := s.(type) {
	case *ast.ColumnAssignStmt:
		if !st.LValue.Result {
			addColumn(left, seenL, toColumn(st.LValue))
		}

		collectExprColumns(st.Value, right, seenR, false)

	case *ast.CompoundStmt:
		for _, sub := range st.Stmts {
			walkStmtForColumns(sub, left, right, seenL, seenR)
		}

	case *ast.IfStmt:
		collectExprColumns(st.Cond, right, seenR, false)
		walkStmtForColumns(st.Then, left, right, seenL, seenR)

		if st.Else != nil {
			walkStmtForColumns(st.Else, left, right, seenL, seenR)
		}

	case *ast.WhileStmt:
		collectExprColumns(st.Cond, right, seenR, false)
		walkStmtForColumns(st.Body, left, right, seenL, seenR)

	case *ast.RepeatStmt:
		walkStmtForColumns(st.Body, left, right, seenL, seenR)
		collectExprColumns(st.Cond, right, seenR, false)

	case *ast.ForStmt:
		collectExprColumns(st.From, right, seenR, false)
		collectExprColumns(st.To, right, seenR, false)

		if st.Step != nil {
			collectExprColumns(st.Step, right, seenR, false)
		}

		walkStmtForColumns(st.Body, left, right, seenL, seenR)

	default:
		for _, n := range ast.Children(s) {
			if e, ok := n.(ast.Expr); ok {
				collectExprColumns(e, right, seenR, false)
			}
		}
	}
}

// collectResultColumns gathers every %col/%n reference anywhere in
// stmts — read or column-assign target alike — grounded on
// visitors.cc's ResColumnVisitor. FETCH enforces this list is empty
// (spec §4.5.2); STORE/TRANSFER wire it into the destination object's
// result-column list.
func collectResultColumns(stmts []ast.Stmt) []elements.Column {
	var out []elements.Column
	seen := map[string]bool{}

	ast.Walk(&ast.CompoundStmt{Stmts: stmts}, func(n ast.Node) bool {
		if ce, ok := n.(*ast.ColumnExpr); ok && ce.Result {
			addColumn(&out, seen, toColumn(ce))
		}

		return true
	})

	return out
}

func collectExprColumns(e ast.Expr, out *[]elements.Column, seen map[string]bool, result bool) {
	if e == nil {
		return
	}

	ast.Walk(e, func(n ast.Node) bool {
		if ce, ok := n.(*ast.ColumnExpr); ok && ce.Result == result {
			addColumn(out, seen, toColumn(ce))
		}

		return true
	})
}

// validateTaskColumns enforces the per-task-type column-usage
// invariants (spec §4.5.2/§4.5.3, §7/§8's "illegal column reference is
// a semantic error") at compile time, against every declared task
// regardless of whether it is ever called, rather than only when a
// FETCH/STORE task happens to run.
func validateTaskColumns(decl *ast.TaskDecl, t *Task) []SemanticDiagnostic {
	var diags []SemanticDiagnostic

	switch t.Type {
	case ast.TaskFetch:
		for _, phase := range [][]ast.Stmt{t.Init, t.Before, t.Rules, t.After, t.Final} {
			if left, _ := collectColumns(phase); len(left) > 0 {
				diags = append(diags, SemanticDiagnostic{Severity: "error", Message: "FETCH task must not assign to $col", Info: decl.Info()})
			}

			if len(collectResultColumns(phase)) > 0 {
				diags = append(diags, SemanticDiagnostic{Severity: "error", Message: "FETCH task must not reference %col", Info: decl.Info()})
			}
		}

	case ast.TaskStore:
		if _, right := allColumns(t); len(right) > 0 {
			diags = append(diags, SemanticDiagnostic{Severity: "error", Message: "STORE task must not read $col: it has no source object", Info: decl.Info()})
		}
	}

	return diags
}

func toColumn(ce *ast.ColumnExpr) elements.Column {
	return elements.Column{Result: ce.Result, ByName: ce.ByName, Name: ce.Name, Number: ce.Number}
}

func addColumn(out *[]elements.Column, seen map[string]bool, c elements.Column) {
	key := c.String()
	if seen[key] {
		return
	}

	seen[key] = true
	*out = append(*out, c)
}
