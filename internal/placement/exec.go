package placement

import (
	"errors"

	"github.com/dekarrin/brickgrammar/internal/bgerr"
	"github.com/dekarrin/brickgrammar/internal/voxel"
)

// defaultBoundSphereRadius is injected the first time an interpretation
// leaves the image empty: grammars that never declare explicit bounds still
// get a playfield to collide against.
const defaultBoundSphereRadius = 8

// assertProbeSize is the footprint AssertFilled dry-run-probes beneath the
// current state.
var assertProbeSize = voxel.V(2, 1, 2)

// Exec executes ops against stack and img, starting from the top-of-stack
// state. When dryRun is true, both img and stack are cloned before
// execution begins and the originals are never touched; the returned Stack
// in that case is the caller's own, unmodified. When dryRun is false, img
// and stack are mutated in place and the post-mutation stack is returned.
func Exec(img *voxel.Image, stack Stack, ops []Operation, dryRun bool) ([]Element, Stack, error) {
	workImg := img
	workStack := stack
	if dryRun {
		workImg = img.Clone()
		workStack = stack.Clone()
	}

	var elements []Element

	for _, op := range ops {
		top := workStack.Top()

		switch op.Kind {
		case OpPush:
			workStack = append(workStack, top)
		case OpPop:
			if len(workStack) <= 1 {
				return nil, stack, bgerr.ErrStackUnderflow
			}
			workStack = workStack[:len(workStack)-1]
		case OpMove:
			workStack[len(workStack)-1] = top.Move(op.Vec)
		case OpRotate:
			workStack[len(workStack)-1] = top.Rotate(op.Int)
		case OpSetColor:
			workStack[len(workStack)-1] = top.SetColor(op.Int)
		case OpPlace:
			elements = append(elements, Element{State: top, PartID: op.ID})
		case OpFillRect:
			if err := workImg.FillRect(originOf(top), op.Vec, dryRun, true); err != nil {
				return nil, stack, err
			}
		case OpFillRectNoCheck:
			if err := workImg.FillRect(originOf(top), op.Vec, dryRun, false); err != nil {
				return nil, stack, err
			}
		case OpPlaceBoundingBox:
			workImg.Union(voxel.BoundingBox(op.Vec, top.Pos))
		case OpPlaceBoundingSphere:
			workImg.Union(voxel.BoundingSphere(op.Int))
		case OpAssertFilled:
			// Always probed as a dry run regardless of the outer dryRun flag:
			// the probe's SUCCESS (no collision) means the cell is empty,
			// which FAILS this assertion; a collision means the cell is
			// full, which satisfies it. This inverted contract is
			// intentional.
			err := workImg.FillRect(originOf(top), assertProbeSize, true, true)
			if err == nil {
				return nil, stack, bgerr.ErrAssertion
			}
			if !errors.Is(err, bgerr.ErrCollision) {
				return nil, stack, err
			}
		}

		if workImg.Len() == 0 {
			workImg.Union(voxel.BoundingSphere(defaultBoundSphereRadius))
		}
	}

	if dryRun {
		return elements, stack, nil
	}
	return elements, workStack, nil
}

func originOf(s State) voxel.Origin {
	return voxel.Origin{Pos: s.Pos, Rotation: s.Rotation}
}
