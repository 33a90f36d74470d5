package voxel

import (
	"fmt"
	"math"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
	"github.com/dekarrin/brickgrammar/internal/util"
)

// Image is a set of occupied integer lattice points. Membership in Points is
// the sole source of truth for occupancy; there is no duplicate-point
// representation since Points is a set.
type Image struct {
	Points util.KeySet[Vec3]
}

// NewImage returns an empty occupancy image.
func NewImage() *Image {
	return &Image{Points: util.NewKeySet[Vec3]()}
}

// Clone returns an Image with an independent copy of the point set. The
// placement interpreter's dry-run path and the parse cache both rely on this
// to guarantee that a dry run never mutates the caller's image.
func (img *Image) Clone() *Image {
	return &Image{Points: img.Points.Copy().(util.KeySet[Vec3])}
}

// Len returns the number of occupied lattice points.
func (img *Image) Len() int {
	return img.Points.Len()
}

// Has reports whether p is occupied.
func (img *Image) Has(p Vec3) bool {
	return img.Points.Has(p)
}

// Origin is the minimal placement state FillRect needs: a position and the
// rotation that orients the fill's footprint.
type Origin struct {
	Pos      Vec3
	Rotation int
}

// FillRect computes the axis-aligned footprint of size (rotated by
// origin.Rotation; the x and z extents are half-open symmetric ranges
// centered on origin, y spans [0, size.Y)) and fills it into the image.
//
// If check is true and any target point is already occupied, it returns
// bgerr.ErrCollision and leaves the image completely unchanged — the fill is
// all-or-nothing. If dryRun is true, no mutation occurs regardless of
// whether the fill would have succeeded.
func (img *Image) FillRect(origin Origin, size Vec3, dryRun, check bool) error {
	rotated := ApplyRotation(size, RotationMatrix(origin.Rotation))
	xHalf, yExtent, zHalf := abs(rotated.X)/2, abs(rotated.Y), abs(rotated.Z)/2

	var newPoints []Vec3
	for dx := -xHalf; dx < xHalf; dx++ {
		for dy := 0; dy < yExtent; dy++ {
			for dz := -zHalf; dz < zHalf; dz++ {
				p := Vec3{X: origin.Pos.X + dx, Y: origin.Pos.Y + dy, Z: origin.Pos.Z + dz}
				if check && img.Points.Has(p) {
					return fmt.Errorf("%w: cannot fill %v", bgerr.ErrCollision, p)
				}
				newPoints = append(newPoints, p)
			}
		}
	}

	if dryRun {
		return nil
	}
	for _, p := range newPoints {
		img.Points.Add(p)
	}
	return nil
}

// BoundingSphere returns the hollow shell of lattice points at exactly
// radius r from the origin: every (x,y,z) with -r <= x,y,z < r for which
// ceil(sqrt(x^2+y^2+z^2)) == r.
func BoundingSphere(r int) util.KeySet[Vec3] {
	shell := util.NewKeySet[Vec3]()
	for x := -r; x < r; x++ {
		for y := -r; y < r; y++ {
			for z := -r; z < r; z++ {
				dist := math.Sqrt(float64(x*x + y*y + z*z))
				if int(math.Ceil(dist)) == r {
					shell.Add(Vec3{X: x, Y: y, Z: z})
				}
			}
		}
	}
	return shell
}

// BoundingBox returns every lattice point on the six faces of a box of
// half-extents size, centered at center.
func BoundingBox(size, center Vec3) util.KeySet[Vec3] {
	box := util.NewKeySet[Vec3]()
	xSize, ySize, zSize := size.X, size.Y, size.Z

	for x := -xSize - 1; x <= xSize; x++ {
		for y := -ySize - 1; y <= ySize; y++ {
			for z := -zSize - 1; z <= zSize; z++ {
				onFace := x == xSize || x == -xSize-1 ||
					y == ySize || y == -ySize-1 ||
					z == zSize || z == -zSize-1
				if onFace {
					box.Add(Vec3{X: center.X + x, Y: center.Y + y, Z: center.Z + z})
				}
			}
		}
	}
	return box
}

// Union adds every point in other to the image in place.
func (img *Image) Union(other util.KeySet[Vec3]) {
	for _, p := range other.Elements() {
		img.Points.Add(p)
	}
}
