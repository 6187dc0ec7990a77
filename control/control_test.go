package control_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/control"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/symboltable"
	"github.com/informave/argon/value"
	"github.com/stretchr/testify/assert"
)

func TestSignals_AreRecognizedByErrorsAs(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"return", &control.Return{Value: value.Int(1)}},
		{"break", &control.Break{}},
		{"continue", &control.Continue{}},
		{"condition", &control.Condition{SQLState: "23000"}},
		{"rethrow", &control.Rethrow{}},
		{"terminate", &control.Terminate{Code: 2}},
		{"assert", &control.Assert{Text: "x > 0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sig control.Signal
			assert.True(t, errors.As(tt.err, &sig))
		})
	}
}

func TestCondition_Error_PrefersCarrierMessage(t *testing.T) {
	c := &control.Condition{Carrier: &elements.ExceptionCarrier{TypeID: "Oops", Payload: value.Str("bad")}}
	assert.Contains(t, c.Error(), "Oops")

	sqlErr := &control.Condition{SQLState: "23505"}
	assert.Contains(t, sqlErr.Error(), "23505")
}

func TestAssert_ErrorIncludesText(t *testing.T) {
	a := &control.Assert{Text: "x > 0"}
	assert.Contains(t, a.Error(), "x > 0")
}

func TestNonSignalError_NotRecognized(t *testing.T) {
	var sig control.Signal
	assert.False(t, errors.As(fmt.Errorf("plain failure"), &sig))
}

type fakeStack struct {
	elems []elements.Element
}

func (s *fakeStack) Push(e elements.Element) { s.elems = append(s.elems, e) }
func (s *fakeStack) Pop()                    { s.elems = s.elems[:len(s.elems)-1] }

func TestStackFrame_PushAndPop(t *testing.T) {
	stack := &fakeStack{}
	elem := elements.NewValueElement("x", ast.SourceInfo{}, value.Int(1))

	pop := control.StackFrame(stack, elem)
	assert.Len(t, stack.elems, 1)

	pop()
	assert.Len(t, stack.elems, 0)
}

func TestSubSymbols_ChildDiesOnCleanup(t *testing.T) {
	parent := symboltable.New(nil)
	child, cleanup := control.SubSymbols(parent)

	ref, err := child.Add("x", elements.NewValueElement("x", ast.SourceInfo{}, value.Int(1)))
	assert.NoError(t, err)
	assert.True(t, ref.Valid())

	cleanup()
	assert.False(t, ref.Valid())
}

func TestReleaseException_ClearsActive(t *testing.T) {
	var active *control.Condition
	setActive := func(c *control.Condition) { active = c }

	active = &control.Condition{SQLState: "X"}
	cleanup := control.ReleaseException(setActive)
	cleanup()

	assert.Nil(t, active)
}
