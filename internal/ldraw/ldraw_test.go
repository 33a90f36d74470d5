package ldraw

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/dekarrin/brickgrammar/internal/placement"
	"github.com/dekarrin/brickgrammar/internal/voxel"
)

// readElements is a minimal LDraw reader that exists only to let this test
// assert the round trip through Encode; it understands exactly the type-1
// line shape Encode produces and nothing else of the LDraw format.
func readElements(t *testing.T, text string) []placement.Element {
	t.Helper()

	var elements []placement.Element
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == "0 STEP" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 15 || fields[0] != "1" {
			t.Fatalf("unrecognized LDraw line: %q", line)
		}

		color, err := strconv.Atoi(fields[1])
		if err != nil {
			t.Fatalf("bad color in line %q: %v", line, err)
		}
		x, err := strconv.Atoi(fields[2])
		if err != nil {
			t.Fatalf("bad x in line %q: %v", line, err)
		}
		y, err := strconv.Atoi(fields[3])
		if err != nil {
			t.Fatalf("bad y in line %q: %v", line, err)
		}
		z, err := strconv.Atoi(fields[4])
		if err != nil {
			t.Fatalf("bad z in line %q: %v", line, err)
		}
		matrix := strings.Join(fields[5:14], " ")
		partFile := fields[14]
		partID := strings.TrimSuffix(partFile, ".dat")

		rotation := rotationFromMatrixString(t, matrix)

		elements = append(elements, placement.Element{
			State: placement.State{
				Pos:      voxel.V(x/scaleX, y/scaleY, z/scaleZ),
				Rotation: rotation,
				Color:    color,
			},
			PartID: partID,
		})
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scanning LDraw text: %v", err)
	}

	return elements
}

func rotationFromMatrixString(t *testing.T, matrix string) int {
	t.Helper()
	for k := 0; k < 4; k++ {
		if voxel.LDrawMatrixString(k) == matrix {
			return k
		}
	}
	t.Fatalf("matrix %q does not match any known rotation index", matrix)
	return -1
}

func TestEncodeRoundTrip(t *testing.T) {
	elements := []placement.Element{
		{State: placement.State{Pos: voxel.V(0, 0, 0), Rotation: 0, Color: 1}, PartID: "3005"},
		{State: placement.State{Pos: voxel.V(2, -3, 5), Rotation: 1, Color: 4}, PartID: "3004"},
		{State: placement.State{Pos: voxel.V(-1, 4, -2), Rotation: 3, Color: 14}, PartID: "3003"},
	}

	text := Encode(elements)
	got := readElements(t, text)

	if len(got) != len(elements) {
		t.Fatalf("round trip produced %d elements, want %d", len(got), len(elements))
	}
	for i := range elements {
		if got[i] != elements[i] {
			t.Fatalf("element %d: round trip got %+v, want %+v", i, got[i], elements[i])
		}
	}
}

func TestEncodeEmitsStepAfterEachElement(t *testing.T) {
	elements := []placement.Element{
		{State: placement.State{Pos: voxel.V(0, 0, 0), Rotation: 0, Color: 1}, PartID: "3005"},
		{State: placement.State{Pos: voxel.V(0, 1, 0), Rotation: 0, Color: 1}, PartID: "3005"},
	}

	text := Encode(elements)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (2 part + 2 STEP), got %d: %q", len(lines), lines)
	}
	for i, line := range lines {
		if i%2 == 1 && line != "0 STEP" {
			t.Fatalf("line %d: expected STEP marker, got %q", i, line)
		}
	}
}

func TestEncodeScalesLatticeCoordinates(t *testing.T) {
	elements := []placement.Element{
		{State: placement.State{Pos: voxel.V(1, 1, 1), Rotation: 0, Color: 1}, PartID: "3005"},
	}
	text := Encode(elements)
	want := fmt.Sprintf("1 1 %d %d %d 1 0 0 0 1 0 0 0 1 3005.dat", scaleX, scaleY, scaleZ)
	if !strings.HasPrefix(text, want) {
		t.Fatalf("expected scaled coordinates in %q, wanted prefix %q", text, want)
	}
}
