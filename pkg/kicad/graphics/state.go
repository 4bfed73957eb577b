package graphics

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceView/pkg/kicad/geom"
)

// RenderState is one frame of the render state stack: the active
// transform and the colors drawables default to when they carry none.
// All fields are value types, so assignment copies a frame completely
// and mutating the top frame never affects a pushed parent.
type RenderState struct {
	Matrix      geom.Matrix3
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// StateStack holds the nested render states. Painters scope style and
// transform changes with Push/Pop; the stack always keeps at least its
// bottom frame.
type StateStack struct {
	states []RenderState
}

// NewStateStack returns a stack with a single identity frame.
func NewStateStack() *StateStack {
	return &StateStack{
		states: []RenderState{{Matrix: geom.Identity()}},
	}
}

// Top returns the current state frame. The pointer is only valid until
// the next Push or Pop.
func (s *StateStack) Top() *RenderState {
	return &s.states[len(s.states)-1]
}

// Push saves the current state by duplicating the top frame.
func (s *StateStack) Push() {
	s.states = append(s.states, s.states[len(s.states)-1])
}

// Pop restores the previously pushed state. Popping the bottom frame is
// a programming error and panics.
func (s *StateStack) Pop() {
	if len(s.states) == 1 {
		panic(ErrStateStackUnderflow)
	}
	s.states = s.states[:len(s.states)-1]
}

// Multiply composes the given matrix onto the current transform without
// pushing a new frame.
func (s *StateStack) Multiply(m geom.Matrix3) {
	top := s.Top()
	top.Matrix = top.Matrix.Mul(m)
}

// Depth returns the number of frames on the stack.
func (s *StateStack) Depth() int {
	return len(s.states)
}
