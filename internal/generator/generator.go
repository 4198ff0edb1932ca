package generator

import (
	"math/rand"

	"github.com/sokolabs/sokosolve/internal/puzzle"
	"github.com/sokolabs/sokosolve/internal/solver"
)

// Options parameterizes a generation run (spec.md §4.E "Parameters").
type Options struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
	MinBoxes, MaxBoxes   int
	MinMoves, MaxMoves   int // L_min, L_max: accepted optimal move-count band
	MinScramble          int // S_min
	MaxScramble          int // S_max
	MaxAttempts          int // N_attempts
	SolveNodeBudget      int // moderate budget used while vetting candidates
}

// DefaultOptions returns the parameter defaults from spec.md §4.E.
func DefaultOptions() Options {
	return Options{
		MinWidth: 8, MaxWidth: 12,
		MinHeight: 8, MaxHeight: 12,
		MinBoxes: 1, MaxBoxes: 4,
		MinMoves: 5, MaxMoves: 50,
		MinScramble: 15, MaxScramble: 60,
		MaxAttempts:     1000,
		SolveNodeBudget: 20000,
	}
}

// Puzzle is a generated level plus provenance: whether it met the target
// band on its own or fell back to the deterministic fallback puzzle
// after exhausting MaxAttempts (spec.md §4.E step 7).
type Puzzle struct {
	Level        *puzzle.Level
	Attempts     int
	OptimalMoves int
	UsedFallback bool
}

// Generate produces one puzzle deterministically from seed (spec.md
// §4.E). The same (opts, seed) pair always yields the same puzzle.
func Generate(opts Options, seed int64) Puzzle {
	rng := rand.New(rand.NewSource(seed))

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		lvl, ok := tryOnce(opts, rng)
		if !ok {
			continue
		}
		r := solver.SolveBudget(lvl, opts.SolveNodeBudget)
		if !r.Solvable {
			continue
		}
		moves := len(r.Solution)
		if moves < opts.MinMoves || moves > opts.MaxMoves {
			continue
		}
		lvl.Metadata = puzzle.Metadata{OptimalMoves: moves, HasOptimalMoves: true}
		return Puzzle{Level: lvl, Attempts: attempt, OptimalMoves: moves}
	}

	fb := fallbackPuzzle()
	return Puzzle{Level: fb.lvl, Attempts: opts.MaxAttempts, OptimalMoves: fb.moves, UsedFallback: true}
}

// tryOnce runs one maze-carve + goal-placement + scramble attempt
// (spec.md §4.E steps 1-4), returning ok=false if the random layout
// didn't yield enough floor cells for the requested box count.
func tryOnce(opts Options, rng *rand.Rand) (*puzzle.Level, bool) {
	width := randRange(rng, opts.MinWidth, opts.MaxWidth)
	height := randRange(rng, opts.MinHeight, opts.MaxHeight)
	if width%2 == 0 {
		width++
	}
	if height%2 == 0 {
		height++
	}

	terrain := carveMaze(width, height, rng)
	floors := floorCells(width, height, terrain)
	numBoxes := randRange(rng, opts.MinBoxes, opts.MaxBoxes)
	if len(floors) < numBoxes+1 {
		return nil, false
	}

	rng.Shuffle(len(floors), func(i, j int) { floors[i], floors[j] = floors[j], floors[i] })
	goals := append([]puzzle.Position(nil), floors[:numBoxes]...)
	for _, g := range goals {
		terrain[g.Y*width+g.X] = puzzle.Goal
	}

	remaining := floors[numBoxes:]
	player := remaining[0]

	boxes := append([]puzzle.Position(nil), goals...)
	origin := puzzle.Origin{Source: "generated"}
	solvedLvl, err := puzzle.NewLevel(width, height, terrain, player, boxes, origin)
	if err != nil {
		return nil, false
	}

	finalPlayer, finalBoxes := scramble(solvedLvl, boxes, player, opts.MinScramble, opts.MaxScramble, rng)
	lvl, err := puzzle.NewLevel(width, height, terrain, finalPlayer, finalBoxes, origin)
	if err != nil {
		return nil, false
	}
	return lvl, true
}

func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

type fallback struct {
	lvl   *puzzle.Level
	moves int
}

// fallbackPuzzle is the deterministic puzzle emitted after MaxAttempts
// failed vetting passes (spec.md §4.E step 7): small, fixed, and known
// solvable in exactly 1 move, so a caller always gets something usable.
func fallbackPuzzle() fallback {
	const src = "#####\n#@$.#\n#####"
	lvl, err := puzzle.Parse(src, puzzle.Origin{Source: "generated-fallback"})
	if err != nil {
		panic("generator: built-in fallback puzzle failed to parse: " + err.Error())
	}
	lvl.Metadata = puzzle.Metadata{OptimalMoves: 1, HasOptimalMoves: true}
	return fallback{lvl: lvl, moves: 1}
}
