// Package voxel implements the integer lattice-point occupancy image and
// rotation algebra the placement machine operates on.
package voxel

// Vec3 is an ordered triple of signed integers.
type Vec3 struct {
	X, Y, Z int
}

func V(x, y, z int) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Matrix is a fixed 3x3 integer rotation matrix.
type Matrix [3][3]int

// matrices holds the four cardinal rotations about the Y axis, indexed by
// rotation index (front, right, back, left).
var matrices = [4]Matrix{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
}

// ldrawMatrixStrings is the LDraw-file textual form of each matrix, kept
// alongside the numeric form so internal/ldraw never has to re-derive it.
var ldrawMatrixStrings = [4]string{
	"1 0 0 0 1 0 0 0 1",
	"0 0 -1 0 1 0 1 0 0",
	"-1 0 0 0 1 0 0 0 -1",
	"0 0 1 0 1 0 -1 0 0",
}

// RotationMatrix returns the k-th fixed rotation matrix. k must be in
// {0,1,2,3}; any other value is wrapped modulo 4.
func RotationMatrix(k int) Matrix {
	return matrices[((k%4)+4)%4]
}

// LDrawMatrixString returns the space-separated 9-int LDraw textual form of
// the k-th rotation matrix.
func LDrawMatrixString(k int) string {
	return ldrawMatrixStrings[((k%4)+4)%4]
}

// ApplyRotation returns M*v.
func ApplyRotation(v Vec3, m Matrix) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
