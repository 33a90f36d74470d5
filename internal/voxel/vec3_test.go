package voxel

import "testing"

// Rotation is cyclic of order 4 — applying rotation index 1 four times in
// a row returns a vector to its original value.
func TestRotationCyclic(t *testing.T) {
	v := V(1, 2, 3)
	got := v
	for i := 0; i < 4; i++ {
		got = ApplyRotation(got, RotationMatrix(1))
	}
	if got != v {
		t.Fatalf("four quarter-turns should return to start, got %v want %v", got, v)
	}
}

func TestApplyRotationIdentity(t *testing.T) {
	v := V(1, 2, 3)
	got := ApplyRotation(v, RotationMatrix(0))
	if got != v {
		t.Fatalf("identity rotation should not change vector, got %v want %v", got, v)
	}
}

func TestApplyRotation90(t *testing.T) {
	got := ApplyRotation(V(1, 2, 3), RotationMatrix(1))
	want := V(-3, 2, 1)
	if got != want {
		t.Fatalf("rotation(1) of (1,2,3): got %v want %v", got, want)
	}
}

func TestFillRectCollision(t *testing.T) {
	img := NewImage()
	origin := Origin{Pos: V(0, 0, 0), Rotation: 0}

	if err := img.FillRect(origin, V(2, 3, 2), false, true); err != nil {
		t.Fatalf("first fill should not collide: %v", err)
	}
	before := img.Len()

	if err := img.FillRect(origin, V(2, 3, 2), false, true); err == nil {
		t.Fatalf("second identical fill should collide")
	}
	if img.Len() != before {
		t.Fatalf("image should be unchanged after a failed fill: got %d want %d", img.Len(), before)
	}
}

func TestFillRectDryRunNeverMutates(t *testing.T) {
	img := NewImage()
	origin := Origin{Pos: V(0, 0, 0), Rotation: 0}

	if err := img.FillRect(origin, V(2, 3, 2), true, true); err != nil {
		t.Fatalf("dry run should not error: %v", err)
	}
	if img.Len() != 0 {
		t.Fatalf("dry run must not mutate the image, got %d points", img.Len())
	}
}

func TestBoundingSphereIsHollowShell(t *testing.T) {
	shell := BoundingSphere(3)
	if !shell.Has(V(3, 0, 0)) {
		t.Fatalf("expected shell to include a point at exactly radius 3")
	}
	if shell.Has(V(0, 0, 0)) {
		t.Fatalf("shell should be hollow: origin should not be included")
	}
}

func TestBoundingBoxContainsCorners(t *testing.T) {
	box := BoundingBox(V(1, 2, 3), V(0, 0, 0))
	if !box.Has(V(1, 2, 3)) {
		t.Fatalf("expected (1,2,3) on the box face")
	}
	if !box.Has(V(-2, -3, -4)) {
		t.Fatalf("expected (-2,-3,-4) on the opposite box face")
	}
	if !box.Has(V(-2, 0, 0)) {
		t.Fatalf("expected (-2,0,0) on a box face")
	}
}

func TestBoundingBoxWithCenter(t *testing.T) {
	box := BoundingBox(V(1, 2, 3), V(1, 1, 1))
	if !box.Has(V(-1, 1, 1)) {
		t.Fatalf("expected (-1,1,1) on the centered box face")
	}
}
