package placement

import "github.com/dekarrin/brickgrammar/internal/voxel"

// State is the five-tuple (x, y, z, rotation_index, color) tracked per
// scope. Equality is by value.
type State struct {
	Pos      voxel.Vec3
	Rotation int // always in {0,1,2,3}
	Color    int
}

// InitialState is the base state every interpretation starts in: origin, no
// rotation, color 1.
var InitialState = State{Pos: voxel.Vec3{}, Rotation: 0, Color: 1}

// Move returns a new State displaced by delta, rotated into the state's
// current frame. Rotation and color are preserved.
func (s State) Move(delta voxel.Vec3) State {
	rotDelta := voxel.ApplyRotation(delta, voxel.RotationMatrix(s.Rotation))
	return State{Pos: s.Pos.Add(rotDelta), Rotation: s.Rotation, Color: s.Color}
}

// Rotate returns a new State with rotation advanced by theta degrees (theta
// must be a multiple of 90).
func (s State) Rotate(thetaDeg int) State {
	return State{Pos: s.Pos, Rotation: (((s.Rotation + thetaDeg/90) % 4) + 4) % 4, Color: s.Color}
}

// SetColor returns a new State with color replaced.
func (s State) SetColor(color int) State {
	return State{Pos: s.Pos, Rotation: s.Rotation, Color: color}
}

// Element is a part placed at a particular state.
type Element struct {
	State  State
	PartID string
}

// Stack is the LIFO of scoped states maintained by '(' and ')'. Minimum
// depth 1.
type Stack []State

// NewStack returns a stack containing a single base state.
func NewStack(base State) Stack {
	return Stack{base}
}

// Top returns the top-of-stack state.
func (s Stack) Top() State {
	return s[len(s)-1]
}

// Clone returns an independent copy of the stack, used by dry-run
// execution.
func (s Stack) Clone() Stack {
	cp := make(Stack, len(s))
	copy(cp, s)
	return cp
}
