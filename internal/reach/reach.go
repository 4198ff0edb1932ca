// Package reach implements the player reachability flood fill (spec.md
// §4.C): given a level, a box set, and a player position, it yields the
// set of cells the player can reach without pushing and a canonical
// representative cell for that region.
package reach

import "github.com/sokolabs/sokosolve/internal/puzzle"

// Region is the result of a flood fill: the reachable cell set and its
// canonical representative (the smallest cell by row-then-column).
type Region struct {
	cells     map[puzzle.Position]bool
	Canonical puzzle.Position
}

// Contains reports whether p is in the reachable region.
func (r Region) Contains(p puzzle.Position) bool {
	return r.cells[p]
}

// Len returns the number of reachable cells.
func (r Region) Len() int {
	return len(r.cells)
}

// Cells returns the reachable cell set. Callers must not mutate it.
func (r Region) Cells() map[puzzle.Position]bool {
	return r.cells
}

// Flood computes the set of cells reachable from player without crossing
// a wall or a box, and the canonical representative cell of that set
// (boxes are treated as temporary walls, per spec.md §4.C).
func Flood(l *puzzle.Level, boxes []puzzle.Position, player puzzle.Position) Region {
	boxSet := puzzle.BoxSet(boxes)
	return flood(l, boxSet, player)
}

// FloodWithBoxSet is Flood for callers that already have a box lookup set
// built (the A* solver expands many states per popped node and would
// otherwise rebuild this map on every call).
func FloodWithBoxSet(l *puzzle.Level, boxSet map[puzzle.Position]bool, player puzzle.Position) Region {
	return flood(l, boxSet, player)
}

func flood(l *puzzle.Level, boxSet map[puzzle.Position]bool, player puzzle.Position) Region {
	cells := make(map[puzzle.Position]bool, l.Width*l.Height/2)
	if !l.Walkable(player) || boxSet[player] {
		// Defensive: a player cannot start on a wall or a box. Still
		// return a singleton region so callers never see a nil map.
		cells[player] = true
		return Region{cells: cells, Canonical: player}
	}

	queue := []puzzle.Position{player}
	cells[player] = true
	canonical := player

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range puzzle.Directions {
			next := cur.Add(d)
			if cells[next] || boxSet[next] || !l.Walkable(next) {
				continue
			}
			cells[next] = true
			if next.Less(canonical) {
				canonical = next
			}
			queue = append(queue, next)
		}
	}

	return Region{cells: cells, Canonical: canonical}
}
