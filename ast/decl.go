package ast

// TaskType enumerates the four task shapes of spec §3/§4.5.
type TaskType int

const (
	TaskVoid TaskType = iota
	TaskFetch
	TaskStore
	TaskTransfer
)

func (t TaskType) String() string {
	switch t {
	case TaskVoid:
		return "VOID"
	case TaskFetch:
		return "FETCH"
	case TaskStore:
		return "STORE"
	case TaskTransfer:
		return "TRANSFER"
	default:
		return "UNKNOWN"
	}
}

// DeclKind enumerates the object-template kinds of spec §3 ({table, sql, view, procedure}).
type DeclKind int

const (
	DeclTable DeclKind = iota
	DeclSql
	DeclView
	DeclProcedure
)

func (d DeclKind) String() string {
	switch d {
	case DeclTable:
		return "table"
	case DeclSql:
		return "sql"
	case DeclView:
		return "view"
	case DeclProcedure:
		return "procedure"
	default:
		return "unknown"
	}
}

// Program is the root node produced by the parser for one source file.
type Program struct {
	NodeInfo
	Decls []Node
}

func (p *Program) Kind() NodeKind { return KindProgram }

// KeyValue is a single option of a CONNECTION ... WITH clause.
type KeyValue struct {
	NodeInfo
	Key   string
	Value Expr
}

func (k *KeyValue) Kind() NodeKind { return KindKeyValue }

// ConnDecl declares a named database connection (spec §3 Conn node).
type ConnDecl struct {
	NodeInfo
	ID      Identifier
	Driver  string
	Options []*KeyValue
}

func (c *ConnDecl) Kind() NodeKind { return KindConn }

// ArgumentsSpec is the declared parameter-name list of a function/object/task.
type ArgumentsSpec struct {
	NodeInfo
	Names []Identifier
}

func (a *ArgumentsSpec) Kind() NodeKind { return KindArgumentsSpec }

// ObjectDecl declares a user object template (table/sql/view/procedure, spec §3 Decl node).
type ObjectDecl struct {
	NodeInfo
	ID       Identifier
	DeclKind DeclKind
	Args     *ArgumentsSpec
	// Body is the table/object-db reference for DeclTable, or the SQL text for DeclSql/DeclView/DeclProcedure.
	Body string
}

func (o *ObjectDecl) Kind() NodeKind { return KindDecl }

// FunctionDecl declares a user function.
type FunctionDecl struct {
	NodeInfo
	ID   Identifier
	Args *ArgumentsSpec
	Body *CompoundStmt
}

func (f *FunctionDecl) Kind() NodeKind { return KindFunctionDecl }

// TaskPhase is one of the five ordered phases of a task body.
type TaskPhase struct {
	NodeInfo
	PhaseKind NodeKind // one of KindTaskInit..KindTaskFinal
	Stmts     []Stmt
}

func (t *TaskPhase) Kind() NodeKind { return t.PhaseKind }

// ExceptionHandler binds a handler block to either a SQLSTATE code, a
// user exception identifier, or the catch-all (both empty means catch-all).
type ExceptionHandler struct {
	SQLState    string
	ExceptionID Identifier
	Body        *CompoundStmt
}

// TaskDecl declares a task (spec §3 Task node / §4.5).
type TaskDecl struct {
	NodeInfo
	ID       Identifier
	Type     TaskType
	Args     *ArgumentsSpec
	TmplArgs []Expr // template operands of the task header ([dest, source] etc.)
	Init     *TaskPhase
	Before   *TaskPhase
	Rules    *TaskPhase
	After    *TaskPhase
	Final    *TaskPhase
	Handlers []*ExceptionHandler
}

func (t *TaskDecl) Kind() NodeKind { return KindTaskDecl }

// ExceptionDecl declares a user exception tag.
type ExceptionDecl struct {
	NodeInfo
	ID Identifier
}

func (e *ExceptionDecl) Kind() NodeKind { return KindExceptionDecl }

// VarDecl declares a global or local variable with an initializer expression.
type VarDecl struct {
	NodeInfo
	ID   Identifier
	Init Expr
}

func (v *VarDecl) Kind() NodeKind { return KindVarDecl }

// SequenceDecl declares a named sequence generator.
type SequenceDecl struct {
	NodeInfo
	ID    Identifier
	Start int64
	Inc   int64
}

func (s *SequenceDecl) Kind() NodeKind { return KindSequenceDecl }
