package ast

// LogStmt is the LOG statement.
type LogStmt struct {
	NodeInfo
	Value Expr
}

func (s *LogStmt) Kind() NodeKind { return KindLogStmt }
func (s *LogStmt) stmtNode()      {}

// SqlExecStmt is an EXEC ... ON <conn> statement running raw SQL with bind args.
type SqlExecStmt struct {
	NodeInfo
	ConnID Identifier
	SQL    string
	Args   []Expr
}

func (s *SqlExecStmt) Kind() NodeKind { return KindSqlExecStmt }
func (s *SqlExecStmt) stmtNode()      {}

// TaskExecStmt invokes another task by identifier.
type TaskExecStmt struct {
	NodeInfo
	TaskID Identifier
	Args   []Expr
}

func (s *TaskExecStmt) Kind() NodeKind { return KindTaskExecStmt }
func (s *TaskExecStmt) stmtNode()      {}

// ColumnAssignStmt is `$col << expr` / `%col << expr`, writing into the destination object.
type ColumnAssignStmt struct {
	NodeInfo
	LValue *ColumnExpr
	Value  Expr
}

func (s *ColumnAssignStmt) Kind() NodeKind { return KindColumnAssignStmt }
func (s *ColumnAssignStmt) stmtNode()      {}

// AssignStmt assigns to a plain variable identifier.
type AssignStmt struct {
	NodeInfo
	Target Identifier
	Value  Expr
}

func (s *AssignStmt) Kind() NodeKind { return KindAssignStmt }
func (s *AssignStmt) stmtNode()      {}

// CompoundStmt is a BEGIN...END block.
type CompoundStmt struct {
	NodeInfo
	Stmts []Stmt
}

func (s *CompoundStmt) Kind() NodeKind { return KindCompoundStmt }
func (s *CompoundStmt) stmtNode()      {}

// IfStmt is IF ... ELSE.
type IfStmt struct {
	NodeInfo
	Cond Expr
	Then *CompoundStmt
	Else Stmt // *CompoundStmt or *IfStmt (else-if chain), nil if absent
}

func (s *IfStmt) Kind() NodeKind { return KindIfStmt }
func (s *IfStmt) stmtNode()      {}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	NodeInfo
	Cond Expr
	Body *CompoundStmt
}

func (s *WhileStmt) Kind() NodeKind { return KindWhileStmt }
func (s *WhileStmt) stmtNode()      {}

// RepeatStmt is a post-tested (REPEAT/UNTIL) loop.
type RepeatStmt struct {
	NodeInfo
	Body *CompoundStmt
	Cond Expr
}

func (s *RepeatStmt) Kind() NodeKind { return KindRepeatStmt }
func (s *RepeatStmt) stmtNode()      {}

// ForStmt is a counted FOR loop: FOR var FROM a TO b [STEP s] DO body.
type ForStmt struct {
	NodeInfo
	Var  Identifier
	From Expr
	To   Expr
	Step Expr // nil means step 1
	Body *CompoundStmt
}

func (s *ForStmt) Kind() NodeKind { return KindForStmt }
func (s *ForStmt) stmtNode()      {}

// ReturnStmt exits the enclosing function/lambda with an optional value.
type ReturnStmt struct {
	NodeInfo
	Value Expr // nil means NULL
}

func (s *ReturnStmt) Kind() NodeKind { return KindReturnStmt }
func (s *ReturnStmt) stmtNode()      {}

// ContinueStmt skips to the next loop iteration.
type ContinueStmt struct{ NodeInfo }

func (s *ContinueStmt) Kind() NodeKind { return KindContinueStmt }
func (s *ContinueStmt) stmtNode()      {}

// BreakStmt exits the nearest loop.
type BreakStmt struct{ NodeInfo }

func (s *BreakStmt) Kind() NodeKind { return KindBreakStmt }
func (s *BreakStmt) stmtNode()      {}

// AssertStmt fails the program with ARGON_EXIT_ASSERT when Cond is false.
type AssertStmt struct {
	NodeInfo
	Cond Expr
	Text string // original source text of Cond, for diagnostics (spec §8 scenario 4)
}

func (s *AssertStmt) Kind() NodeKind { return KindAssertStmt }
func (s *AssertStmt) stmtNode()      {}

// ThrowStmt raises a user-declared exception: throw E(args...).
type ThrowStmt struct {
	NodeInfo
	ExceptionID Identifier
	Args        []Expr
}

func (s *ThrowStmt) Kind() NodeKind { return KindThrowStmt }
func (s *ThrowStmt) stmtNode()      {}

// LambdaFuncStmt declares an inline lambda and binds it to a variable
// (the statement form of spec §3's LambdaFunc grouping).
type LambdaFuncStmt struct {
	NodeInfo
	Target Identifier
	Body   *CompoundStmt
}

func (s *LambdaFuncStmt) Kind() NodeKind { return KindLambdaFuncStmt }
func (s *LambdaFuncStmt) stmtNode()      {}
