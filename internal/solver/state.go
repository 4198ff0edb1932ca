package solver

import (
	"sort"

	"github.com/sokolabs/sokosolve/internal/puzzle"
)

// stateKey canonically identifies a push-level search state: the
// canonical player cell plus the sorted box positions (spec.md §3, §4.D).
// The hash is a cheap composite used as the closed-set map key; hash
// collisions are possible in principle but astronomically unlikely at
// the state-space sizes this solver targets, matching the same tradeoff
// spec.md §9 accepts for the cache digest.
type stateKey struct {
	hash  uint64
	boxes string // canonical sorted box list, serialized, used to break hash ties
}

// encodeBoxes renders a sorted box slice into a compact, comparable
// string key. Boxes are assumed already sorted by (row, then column).
func encodeBoxes(boxes []puzzle.Position) string {
	buf := make([]byte, 0, len(boxes)*8)
	for _, b := range boxes {
		buf = appendVarint(buf, int32(b.X))
		buf = appendVarint(buf, int32(b.Y))
	}
	return string(buf)
}

func appendVarint(buf []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		buf = append(buf, byte(u)|0x80)
		u >>= 7
	}
	return append(buf, byte(u))
}

// newStateKey builds the canonical key for (canonicalPlayer, boxes) using
// the level's Zobrist table for the hash half and a serialized box list
// to disambiguate any hash collisions.
func newStateKey(zt *puzzle.ZobristTable, l *puzzle.Level, canonicalPlayer puzzle.Position, boxes []puzzle.Position) stateKey {
	h := zt.PlayerKey(l, canonicalPlayer)
	for _, b := range boxes {
		h ^= zt.BoxKey(l, b)
	}
	return stateKey{hash: h, boxes: encodeBoxes(boxes)}
}

// sortedBoxes returns a freshly sorted copy of boxes; callers that mutate
// one box's position (a push) must re-sort before using the result as a
// state key, per spec.md §3 "Sorting box positions ... ensures the hash
// is invariant under any permutation of the box list".
func sortedBoxes(boxes []puzzle.Position) []puzzle.Position {
	out := make([]puzzle.Position, len(boxes))
	copy(out, boxes)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// heuristic is the sum, over every box, of its Manhattan distance to the
// nearest goal (spec.md §4.D "Cost model"). Admissible and consistent
// under push-level expansion, per spec.
func heuristic(l *puzzle.Level, boxes []puzzle.Position) int {
	total := 0
	for _, b := range boxes {
		best := -1
		for _, g := range l.Goals {
			d := manhattan(b, g)
			if best == -1 || d < best {
				best = d
			}
		}
		if best > 0 {
			total += best
		}
	}
	return total
}

func manhattan(a, b puzzle.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
