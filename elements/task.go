package elements

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/value"
)

// Task is the declaration-metadata slice of a task element shared by
// every task shape (VOID/FETCH/STORE/TRANSFER). processor.Task embeds
// this and adds the compiled phase statement lists and handler set,
// grounded on the Element base of original_source/src/task.cc.
type Task struct {
	ID   ast.Identifier
	Type ast.TaskType
	Args []ast.Identifier
	Info ast.SourceInfo
}

func (t *Task) Value() value.Value { return value.Null() }
func (t *Task) String() string     { return "task " + t.ID.String() + " (" + t.Type.String() + ")" }
func (t *Task) ElemName() string   { return t.ID.String() }
func (t *Task) TypeName() string   { return "task" }

func (t *Task) SourceInfo() ast.SourceInfo { return t.Info }
