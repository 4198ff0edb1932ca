package deadlock

import "github.com/sokolabs/sokosolve/internal/puzzle"

// FreezeDeadlock checks every 2x2 window touching movedBox for the
// freeze pattern: all four cells wall-or-box, at least two boxes among
// them, and at least one of those boxes off a goal (spec.md §4.B
// "Freeze deadlock — dynamic"). O(1) — four windows, four cells each.
func FreezeDeadlock(l *puzzle.Level, boxSet map[puzzle.Position]bool, movedBox puzzle.Position) bool {
	// The four 2x2 windows with movedBox as top-left, top-right,
	// bottom-left, or bottom-right corner.
	offsets := [4][2]int{{0, 0}, {-1, 0}, {0, -1}, {-1, -1}}
	for _, off := range offsets {
		ox, oy := movedBox.X+off[0], movedBox.Y+off[1]
		if isFreezeWindow(l, boxSet, ox, oy) {
			return true
		}
	}
	return false
}

func isFreezeWindow(l *puzzle.Level, boxSet map[puzzle.Position]bool, ox, oy int) bool {
	boxCount := 0
	anyOffGoal := false
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			p := puzzle.Position{X: ox + dx, Y: oy + dy}
			switch {
			case l.TerrainAt(p) == puzzle.Wall:
				// wall cell: satisfies "wall-or-box" for this window
			case boxSet[p]:
				boxCount++
				if !l.IsGoal(p) {
					anyOffGoal = true
				}
			default:
				return false // an open floor/goal cell breaks the window
			}
		}
	}
	return boxCount >= 2 && anyOffGoal
}
