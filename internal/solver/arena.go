package solver

import "github.com/sokolabs/sokosolve/internal/puzzle"

// node is one expanded search state. Parents are referenced by arena
// index rather than pointer, so the whole search graph is a single
// append-only slice with no reference cycles and a lifetime bounded to
// one Solve call (spec.md §9 "Cyclic parent pointers in search nodes").
type node struct {
	key       stateKey
	player    puzzle.Position // canonical player cell
	boxes     []puzzle.Position
	g, h      int
	parent    int32 // index into arena; meaningless when hasParent is false
	walk      []puzzle.Direction
	push      puzzle.Direction
	hasParent bool
}

// arena is the append-only node store for a single Solve call.
type arena struct {
	nodes []node
}

func newArena(capacityHint int) *arena {
	return &arena{nodes: make([]node, 0, capacityHint)}
}

func (a *arena) add(n node) int32 {
	a.nodes = append(a.nodes, n)
	return int32(len(a.nodes) - 1)
}

func (a *arena) get(i int32) *node {
	return &a.nodes[i]
}

// reconstructPath walks the parent chain from goalIdx back to the root,
// splicing each edge's walk-then-push segment into the final move
// sequence (spec.md §4.D "Termination").
func (a *arena) reconstructPath(goalIdx int32) []puzzle.Direction {
	var segments [][]puzzle.Direction
	for idx := goalIdx; ; {
		n := a.get(idx)
		if !n.hasParent {
			break
		}
		seg := make([]puzzle.Direction, 0, len(n.walk)+1)
		seg = append(seg, n.walk...)
		seg = append(seg, n.push)
		segments = append(segments, seg)
		idx = n.parent
	}

	var moves []puzzle.Direction
	for i := len(segments) - 1; i >= 0; i-- {
		moves = append(moves, segments[i]...)
	}
	return moves
}
