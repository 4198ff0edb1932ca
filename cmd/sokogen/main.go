// Command sokogen drives the reverse-scramble level generator (spec.md
// §4.E) standalone, printing the generated puzzle's ASCII form and
// provenance so a corpus can be built up incrementally.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/sokolabs/sokosolve/internal/generator"
	"github.com/sokolabs/sokosolve/internal/puzzle"
)

func main() {
	seed := flag.Int64("seed", 0, "deterministic generator seed (0: derive from the current time and log it)")
	minMoves := flag.Int("min-moves", generator.DefaultOptions().MinMoves, "accept only puzzles with optimal move count >= this")
	maxMoves := flag.Int("max-moves", generator.DefaultOptions().MaxMoves, "accept only puzzles with optimal move count <= this")
	boxes := flag.Int("boxes", 0, "exact box count (0: use the default 1-4 random range)")
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
		log.Printf("sokogen: no --seed given, using %d (pass --seed %d to reproduce this run)", s, s)
	}

	opts := generator.DefaultOptions()
	opts.MinMoves = *minMoves
	opts.MaxMoves = *maxMoves
	if *boxes > 0 {
		opts.MinBoxes, opts.MaxBoxes = *boxes, *boxes
	}

	p := generator.Generate(opts, s)
	fmt.Println(puzzle.Emit(p.Level))
	fmt.Printf("; optimal_moves=%d attempts=%d used_fallback=%v seed=%d\n", p.OptimalMoves, p.Attempts, p.UsedFallback, s)
}
