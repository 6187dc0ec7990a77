package elements

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/value"
)

// Sequence is a named counter element (`seq.next` built-in), grounded
// on original_source/src/sequence.cc. It has no source position of
// its own — sequences are process-wide, not declared at a specific
// source location.
type Sequence struct {
	Name string
	Cur  value.Value
	Inc  int64
}

// NewSequence creates a sequence starting at start, stepping by inc.
func NewSequence(name string, start, inc int64) *Sequence {
	return &Sequence{Name: name, Cur: value.Int(start), Inc: inc}
}

// Next advances the sequence and returns the new value, mirroring the
// original's Sequence::nextValue()+_value() pair collapsed into one
// call since nothing else observes the pre-increment value.
func (s *Sequence) Next() (value.Value, error) {
	cur, err := s.Cur.AsInt()
	if err != nil {
		return value.Value{}, err
	}

	s.Cur = value.Int(cur + s.Inc)

	return s.Cur, nil
}

func (s *Sequence) Value() value.Value { return s.Cur }

func (s *Sequence) String() string {
	if s.Cur.IsNull() {
		return "<NULL>"
	}

	return "Value: " + s.Cur.Str()
}

func (s *Sequence) ElemName() string           { return s.Name }
func (s *Sequence) TypeName() string           { return "sequence" }
func (s *Sequence) SourceInfo() ast.SourceInfo { return ast.SourceInfo{} }
