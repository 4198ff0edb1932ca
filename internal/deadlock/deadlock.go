// Package deadlock implements the dead-square oracle and the dynamic
// freeze-deadlock check (spec.md §4.B).
package deadlock

import "github.com/sokolabs/sokosolve/internal/puzzle"

// Oracle is a per-level, precomputed dead-square map plus the freeze
// check, which needs no precomputation. Construction is O(goals * area);
// DeadSquare is O(1) thereafter.
type Oracle struct {
	level *puzzle.Level
	dead  []bool // row-major, len == level.Width*level.Height
}

// Build precomputes the dead-square map for l (spec.md §4.B "Dead
// squares — construction" + the optional dead-lane expansion).
func Build(l *puzzle.Level) *Oracle {
	o := &Oracle{level: l, dead: make([]bool, l.Width*l.Height)}
	live := liveSet(l)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			p := puzzle.Position{X: x, Y: y}
			if !l.Walkable(p) || l.IsGoal(p) {
				continue // goals are never dead by definition
			}
			idx := y*l.Width + x
			o.dead[idx] = !live[p]
		}
	}
	o.expandDeadLanes()
	return o
}

// liveSet is the union, over every goal, of the cells from which a box
// could be pulled to that goal one step at a time — a reverse BFS in
// "box space": from cell p, a pull to p-d is legal iff both p-d and p-2d
// are floor-or-goal (the player stands on p-d and steps back onto p-2d,
// which in forward search is the player on p-2d pushing the box from p-d
// onto p).
func liveSet(l *puzzle.Level) map[puzzle.Position]bool {
	live := make(map[puzzle.Position]bool, l.Width*l.Height)
	for _, goal := range l.Goals {
		queue := []puzzle.Position{goal}
		live[goal] = true
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, d := range puzzle.Directions {
				pullTo := p.Sub(d)      // where the box ends up after the pull
				playerTo := pullTo.Sub(d) // where the player steps back to
				if live[pullTo] {
					continue
				}
				if !l.Walkable(pullTo) || !l.Walkable(playerTo) {
					continue
				}
				live[pullTo] = true
				queue = append(queue, pullTo)
			}
		}
	}
	return live
}

// expandDeadLanes applies the static corner-line refinement: for each
// row flanked entirely by walls above or below with no goal in it, if
// both ends of the row's floor run are already dead, the whole run is
// dead. A symmetric pass handles columns.
func (o *Oracle) expandDeadLanes() {
	l := o.level

	flankedRow := func(y int) bool {
		if y-1 < 0 || y+1 >= l.Height {
			return true
		}
		above, below := true, true
		for x := 0; x < l.Width; x++ {
			if l.TerrainAt(puzzle.Position{X: x, Y: y - 1}) != puzzle.Wall {
				above = false
			}
			if l.TerrainAt(puzzle.Position{X: x, Y: y + 1}) != puzzle.Wall {
				below = false
			}
		}
		return above || below
	}
	flankedCol := func(x int) bool {
		if x-1 < 0 || x+1 >= l.Width {
			return true
		}
		left, right := true, true
		for y := 0; y < l.Height; y++ {
			if l.TerrainAt(puzzle.Position{X: x - 1, Y: y}) != puzzle.Wall {
				left = false
			}
			if l.TerrainAt(puzzle.Position{X: x + 1, Y: y}) != puzzle.Wall {
				right = false
			}
		}
		return left || right
	}

	for y := 0; y < l.Height; y++ {
		if !flankedRow(y) {
			continue
		}
		runHasGoal := false
		start := -1
		for x := 0; x <= l.Width; x++ {
			p := puzzle.Position{X: x, Y: y}
			walkable := x < l.Width && l.Walkable(p)
			if walkable {
				if start == -1 {
					start = x
				}
				if l.IsGoal(p) {
					runHasGoal = true
				}
			}
			if (!walkable || x == l.Width) && start != -1 {
				end := x - 1
				o.collapseDeadRun(runHasGoal, func(i int) puzzle.Position {
					return puzzle.Position{X: start + i, Y: y}
				}, end-start+1)
				start, runHasGoal = -1, false
			}
		}
	}

	for x := 0; x < l.Width; x++ {
		if !flankedCol(x) {
			continue
		}
		runHasGoal := false
		start := -1
		for y := 0; y <= l.Height; y++ {
			p := puzzle.Position{X: x, Y: y}
			walkable := y < l.Height && l.Walkable(p)
			if walkable {
				if start == -1 {
					start = y
				}
				if l.IsGoal(p) {
					runHasGoal = true
				}
			}
			if (!walkable || y == l.Height) && start != -1 {
				end := y - 1
				o.collapseDeadRun(runHasGoal, func(i int) puzzle.Position {
					return puzzle.Position{X: x, Y: start + i}
				}, end-start+1)
				start, runHasGoal = -1, false
			}
		}
	}
}

// collapseDeadRun marks every cell in a floor run dead when the run
// contains no goal and both of its end cells are already dead.
func (o *Oracle) collapseDeadRun(runHasGoal bool, at func(int) puzzle.Position, n int) {
	if runHasGoal || n == 0 {
		return
	}
	first, last := at(0), at(n-1)
	if !o.isDeadRaw(first) || !o.isDeadRaw(last) {
		return
	}
	for i := 0; i < n; i++ {
		p := at(i)
		o.dead[o.level.Width*p.Y+p.X] = true
	}
}

func (o *Oracle) isDeadRaw(p puzzle.Position) bool {
	if !o.level.InBounds(p) {
		return false
	}
	return o.dead[o.level.Width*p.Y+p.X]
}

// DeadSquare reports whether no sequence of legal pushes can ever deliver
// a box from p onto a goal. O(1).
func (o *Oracle) DeadSquare(p puzzle.Position) bool {
	if !o.level.InBounds(p) {
		return true
	}
	return o.dead[o.level.Width*p.Y+p.X]
}
