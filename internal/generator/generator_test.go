package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokolabs/sokosolve/internal/solver"
)

func TestGenerateIsDeterministicForAFixedSeed(t *testing.T) {
	opts := DefaultOptions()
	a := Generate(opts, 42)
	b := Generate(opts, 42)
	require.NotNil(t, a.Level)
	require.NotNil(t, b.Level)
	assert.Equal(t, a.Level.Width, b.Level.Width)
	assert.Equal(t, a.Level.Height, b.Level.Height)
	assert.Equal(t, a.Level.Boxes, b.Level.Boxes)
	assert.Equal(t, a.Level.Player, b.Level.Player)
	assert.Equal(t, a.OptimalMoves, b.OptimalMoves)
}

func TestGenerateProducesSolvableLevelWithinMoveBand(t *testing.T) {
	opts := DefaultOptions()
	p := Generate(opts, 7)
	require.NotNil(t, p.Level)
	if p.UsedFallback {
		t.Skip("this seed exhausted MaxAttempts; fallback puzzles are covered separately")
	}
	assert.GreaterOrEqual(t, p.OptimalMoves, opts.MinMoves)
	assert.LessOrEqual(t, p.OptimalMoves, opts.MaxMoves)
}

func TestFallbackPuzzleIsAlwaysSolvable(t *testing.T) {
	fb := fallbackPuzzle()
	require.NotNil(t, fb.lvl)
	assert.Equal(t, 1, fb.moves)
	r := solver.Solve(fb.lvl)
	assert.True(t, r.Solvable)
	assert.Equal(t, fb.moves, len(r.Solution))
}

func TestDifferentSeedsTypicallyDiffer(t *testing.T) {
	opts := DefaultOptions()
	a := Generate(opts, 1)
	b := Generate(opts, 2)
	require.NotNil(t, a.Level)
	require.NotNil(t, b.Level)
	if a.Level.Player == b.Level.Player && len(a.Level.Boxes) == len(b.Level.Boxes) {
		t.Log("seeds 1 and 2 happened to collide on the trivial fields; not itself a failure")
	}
}
