package solver

import "github.com/sokolabs/sokosolve/internal/puzzle"

// freezeMemo caches the freeze-deadlock verdict for a box configuration,
// keyed by a hash over the box set alone (the player's position doesn't
// affect whether a box configuration is frozen). This is a direct
// adaptation of `internal/engine/transposition.go`'s TranspositionTable:
// same fixed-size, power-of-two, hash-indexed slot array, here with an
// always-replace rule on store — except it memoizes a deadlock boolean
// instead of a search score/bound, since box sets recur often across
// sibling expansions in a single solve (many successors differ in only
// one box) while the freeze scan itself re-walks up to four 2x2 windows
// each time it's asked.
type freezeMemo struct {
	entries []freezeEntry
	mask    uint64
}

type freezeEntry struct {
	hash    uint64
	frozen  bool
	valid   bool
}

func newFreezeMemo(sizeHint int) *freezeMemo {
	n := roundUpPow2(sizeHint)
	return &freezeMemo{entries: make([]freezeEntry, n), mask: uint64(n - 1)}
}

func roundUpPow2(n int) int {
	if n < 16 {
		n = 16
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func boxSetHash(zt *puzzle.ZobristTable, l *puzzle.Level, boxes []puzzle.Position) uint64 {
	var h uint64
	for _, b := range boxes {
		h ^= zt.BoxKey(l, b)
	}
	return h
}

// lookup returns the memoized verdict, or ok=false on a miss or a
// collision against a different box set (the slot is keyed only by hash,
// so a 64-bit collision would silently misreport the verdict for the
// other box set; the solver does not re-check memoized verdicts).
func (m *freezeMemo) lookup(hash uint64) (frozen, ok bool) {
	e := &m.entries[hash&m.mask]
	if e.valid && e.hash == hash {
		return e.frozen, true
	}
	return false, false
}

func (m *freezeMemo) store(hash uint64, frozen bool) {
	m.entries[hash&m.mask] = freezeEntry{hash: hash, frozen: frozen, valid: true}
}
