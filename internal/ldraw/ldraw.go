// Package ldraw converts the generator's Element stream into LDraw text.
// Decoding an LDraw model and the grammar converter that goes with it are
// not implemented here.
package ldraw

import (
	"fmt"
	"strings"

	"github.com/dekarrin/brickgrammar/internal/placement"
	"github.com/dekarrin/brickgrammar/internal/voxel"
)

// Scale factors from unitless lattice coordinates to LDraw units.
const (
	scaleX = 10
	scaleY = 8
	scaleZ = 10
)

// Encode converts an ordered element list into LDraw file text. Each
// element becomes a type-1 (part reference) line followed by a "0 STEP"
// line, bit-exact with the format external LDraw tools expect.
func Encode(elements []placement.Element) string {
	var sb strings.Builder
	for _, el := range elements {
		writeElement(&sb, el)
	}
	return sb.String()
}

func writeElement(sb *strings.Builder, el placement.Element) {
	pos := voxel.V(el.State.Pos.X*scaleX, el.State.Pos.Y*scaleY, el.State.Pos.Z*scaleZ)
	matrix := voxel.LDrawMatrixString(el.State.Rotation)

	fmt.Fprintf(sb, "1 %d %d %d %d %s %s.dat\n", el.State.Color, pos.X, pos.Y, pos.Z, matrix, el.PartID)
	sb.WriteString("0 STEP\n")
}
