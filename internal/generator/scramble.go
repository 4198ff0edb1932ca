package generator

import (
	"math/rand"

	"github.com/sokolabs/sokosolve/internal/puzzle"
)

// pullMove is one legal backward move: pulling the box at From to To
// drags the player from PlayerFrom to PlayerTo.
type pullMove struct {
	From, To             puzzle.Position
	PlayerFrom, PlayerTo puzzle.Position
}

// legalPulls enumerates every box that can be pulled one step given the
// player's current position (spec.md §4.E step 4): for box b and
// direction d with b = player + d (the box sits directly ahead of the
// player, the same geometry a forward push would use), the player
// retreats to player-d and the box slides into the player's old cell,
// provided player-d is reachable and empty.
func legalPulls(l *puzzle.Level, boxSet map[puzzle.Position]bool, player puzzle.Position) []pullMove {
	var moves []pullMove

	for _, d := range puzzle.Directions {
		b := player.Add(d)
		if !boxSet[b] {
			continue
		}
		dest := player.Sub(d)
		if !l.Walkable(dest) || boxSet[dest] {
			continue
		}
		moves = append(moves, pullMove{
			From:       b,
			To:         player,
			PlayerFrom: player,
			PlayerTo:   dest,
		})
	}
	return moves
}

// scramble applies between sMin and sMax legal pulls (inclusive),
// stopping early if no legal pull exists, and returns the resulting
// player position and box set (spec.md §4.E step 4).
func scramble(l *puzzle.Level, boxes []puzzle.Position, player puzzle.Position, sMin, sMax int, rng *rand.Rand) (puzzle.Position, []puzzle.Position) {
	boxSet := puzzle.BoxSet(boxes)
	steps := sMin
	if sMax > sMin {
		steps += rng.Intn(sMax - sMin + 1)
	}

	for i := 0; i < steps; i++ {
		moves := legalPulls(l, boxSet, player)
		if len(moves) == 0 {
			break
		}
		m := moves[rng.Intn(len(moves))]
		delete(boxSet, m.From)
		boxSet[m.To] = true
		player = m.PlayerTo
	}

	out := make([]puzzle.Position, 0, len(boxSet))
	for b := range boxSet {
		out = append(out, b)
	}
	puzzle.SortPositions(out)
	return player, out
}
