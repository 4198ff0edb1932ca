// Package solver implements the push-level A* search over Sokoban states
// (spec.md §4.D), its arena-backed node storage (§9), and the cooperative
// variant used by interactive hosts (§4.H).
package solver

import (
	"container/heap"

	"github.com/sokolabs/sokosolve/internal/deadlock"
	"github.com/sokolabs/sokosolve/internal/puzzle"
	"github.com/sokolabs/sokosolve/internal/reach"
)

// Result is the outcome of a single Solve call.
type Result struct {
	Solvable bool
	// Solution is the full player-move sequence (walks and pushes
	// interleaved), empty when Solvable is false.
	Solution []puzzle.Direction

	NodesExplored  int // states popped off the frontier and expanded
	NodesGenerated int // successor states produced, closed-set hits included
	MaxOpenSetSize int

	// HitLimit is true when the search stopped because it exhausted
	// maxNodes, not because it proved the level solvable or unsolvable.
	// A caller must treat HitLimit results as inconclusive, never as a
	// proof of unsolvability (spec.md §4.D "Termination").
	HitLimit bool
}

// DefaultMaxNodes is the node budget cmd/sokobench uses when the operator
// supplies no --max-nodes override (spec.md §6).
const DefaultMaxNodes = 150000

// Solve runs push-level A* from l's initial state and returns the first
// solution it reaches, or HitLimit/unsolvable per spec.md §4.D. States are
// ordered by walk-plus-push moves, but a state is closed when first
// generated and is keyed by the player's region rather than exact cell,
// so the returned solution is not guaranteed to be minimal in moves or in
// pushes.
func Solve(l *puzzle.Level) Result {
	return SolveBudget(l, DefaultMaxNodes)
}

// SolveBudget is Solve with an explicit node budget.
func SolveBudget(l *puzzle.Level, maxNodes int) Result {
	r, _ := solve(l, maxNodes, nil)
	return r
}

// yielder lets a caller observe progress and request early termination
// between node expansions (used by the cooperative variant in
// cooperative.go; nil for a plain synchronous Solve).
type yielder interface {
	// shouldStop is polled roughly every 1000 expansions (spec.md §4.H).
	shouldStop() bool
}

// solve is the shared engine behind Solve and the cooperative driver.
// cancelled reports whether a non-nil yielder asked for early exit; a
// cancelled search is always reported identically to a budget-exhausted
// one (HitLimit=true), per spec.md §4.H.
func solve(l *puzzle.Level, maxNodes int, y yielder) (Result, bool) {
	oracle := deadlock.Build(l)
	zt := puzzle.NewZobristTable(l)
	memo := newFreezeMemo(4096)

	a := newArena(1024)
	fr := newFrontier()
	closed := make(map[stateKey]bool, 1024)

	startBoxes := sortedBoxes(l.Boxes)

	for _, b := range startBoxes {
		if oracle.DeadSquare(b) {
			return Result{Solvable: false}, false
		}
	}

	startRegion := reach.Flood(l, startBoxes, l.Player)
	startKey := newStateKey(zt, l, startRegion.Canonical, startBoxes)

	rootIdx := a.add(node{
		key:    startKey,
		player: startRegion.Canonical,
		boxes:  startBoxes,
		g:      0,
		h:      heuristic(l, startBoxes),
	})
	closed[startKey] = true
	heap.Push(fr, frontierItem{f: a.get(rootIdx).h, seq: 0, node: rootIdx})
	// playerAt holds each arena node's actual player cell (node.player is
	// only the region's canonical cell), indexed in step with the arena.
	playerAt := []puzzle.Position{l.Player}

	var result Result
	seq := 1

	if l.Solved(startBoxes) {
		return Result{Solvable: true, Solution: nil}, false
	}

	for fr.Len() > 0 {
		if result.MaxOpenSetSize < fr.Len() {
			result.MaxOpenSetSize = fr.Len()
		}
		if result.NodesExplored >= maxNodes {
			result.HitLimit = true
			return result, false
		}
		if y != nil && result.NodesExplored%1000 == 0 && y.shouldStop() {
			result.HitLimit = true
			return result, true
		}

		item := heap.Pop(fr).(frontierItem)
		cur := a.get(item.node)
		result.NodesExplored++

		if l.Solved(cur.boxes) {
			result.Solvable = true
			result.Solution = a.reconstructPath(item.node)
			return result, false
		}

		region := reach.FloodWithBoxSet(l, puzzle.BoxSet(cur.boxes), cur.player)

		for boxIdx, box := range cur.boxes {
			for _, d := range puzzle.Directions {
				pushFrom := box.Sub(d) // where the player must stand to push
				pushTo := box.Add(d)   // where the box lands

				if !region.Contains(pushFrom) {
					continue
				}
				if !l.Walkable(pushTo) || oracle.DeadSquare(pushTo) {
					continue
				}
				if positionInSlice(cur.boxes, pushTo) {
					continue // pushTo occupied by another box
				}

				walk, ok := reach.Path(l, puzzle.BoxSet(cur.boxes), playerAt[item.node], pushFrom)
				if !ok {
					continue
				}

				nextBoxes := make([]puzzle.Position, len(cur.boxes))
				copy(nextBoxes, cur.boxes)
				nextBoxes[boxIdx] = pushTo
				nextBoxesSorted := sortedBoxes(nextBoxes)

				nextBoxSet := puzzle.BoxSet(nextBoxesSorted)
				hash := boxSetHash(zt, l, nextBoxesSorted)
				frozen, known := memo.lookup(hash)
				if !known {
					frozen = deadlock.FreezeDeadlock(l, nextBoxSet, pushTo)
					memo.store(hash, frozen)
				}
				if frozen {
					result.NodesGenerated++
					continue
				}

				nextRegion := reach.FloodWithBoxSet(l, nextBoxSet, box)
				nextKey := newStateKey(zt, l, nextRegion.Canonical, nextBoxesSorted)
				result.NodesGenerated++
				if closed[nextKey] {
					continue
				}
				closed[nextKey] = true

				g := cur.g + len(walk) + 1
				h := heuristic(l, nextBoxesSorted)
				idx := a.add(node{
					key:       nextKey,
					player:    nextRegion.Canonical,
					boxes:     nextBoxesSorted,
					g:         g,
					h:         h,
					parent:    item.node,
					walk:      walk,
					push:      d,
					hasParent: true,
				})
				playerAt = append(playerAt, box)
				heap.Push(fr, frontierItem{f: g + h, seq: seq, node: idx})
				seq++
			}
		}
	}

	// Frontier exhausted with no solution found: proven unsolvable.
	return result, false
}

func positionInSlice(ps []puzzle.Position, p puzzle.Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
