// Command sokobench is the batch benchmark driver (spec.md §4.G, §6):
// it walks one or more puzzle corpora, consults and populates a solution
// cache, and prints per-corpus and overall throughput statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/sokolabs/sokosolve/internal/bench"
	"github.com/sokolabs/sokosolve/internal/cache"
	"github.com/sokolabs/sokosolve/internal/generator"
	"github.com/sokolabs/sokosolve/internal/puzzle"
	"github.com/sokolabs/sokosolve/internal/solver"
)

// corpusFlag collects repeated --corpus label:path pairs (spec.md §6
// "CLI surface").
type corpusFlag []bench.Corpus

func (c *corpusFlag) String() string {
	labels := make([]string, len(*c))
	for i, co := range *c {
		labels[i] = co.Label
	}
	return strings.Join(labels, ",")
}

func (c *corpusFlag) Set(value string) error {
	label, path, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("--corpus must be label:path, got %q", value)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading corpus %s: %w", label, err)
	}
	*c = append(*c, bench.Corpus{Label: label, Text: string(data)})
	return nil
}

func main() {
	var corpora corpusFlag
	flag.Var(&corpora, "corpus", "label:path, repeatable")
	cachePath := flag.String("cache", "./solution-cache.json", "solution cache file")
	litePath := flag.String("lite", "", "optional lite cache projection output path")
	maxNodes := flag.Int("max-nodes", solver.DefaultMaxNodes, "solver node budget per puzzle")
	version := flag.String("version", "sokosolve-dev", "solver_version tag written into new cache entries")
	concurrency := flag.Int("concurrency", 1, "puzzles solved in parallel")
	checkpointDir := flag.String("checkpoint", "", "resumable-run checkpoint directory (default: platform data dir)")
	generate := flag.Int("generate", 0, "synthesize this many puzzles via the reverse-scramble generator instead of (or in addition to) --corpus")
	seed := flag.Int64("seed", 0, "generator seed for --generate (0: derive from the current time and log it)")
	flag.Parse()

	if len(corpora) == 0 && *generate == 0 {
		log.Fatal("sokobench: at least one --corpus or --generate is required")
	}

	var fallbackSkipped int
	if *generate > 0 {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
			log.Printf("sokobench: no --seed given for --generate, using %d (pass --seed %d to reproduce this run)", s, s)
		}
		opts := generator.DefaultOptions()
		var sb strings.Builder
		for i := 0; i < *generate; i++ {
			p := generator.Generate(opts, s+int64(i))
			if p.UsedFallback {
				fallbackSkipped++
			}
			sb.WriteString(puzzle.Emit(p.Level))
			sb.WriteString("\n\n")
		}
		corpora = append(corpora, bench.Corpus{Label: "generated", Text: sb.String()})
	}

	c, err := cache.Load(*cachePath)
	if err != nil {
		log.Printf("sokobench: warning: cache load failed, starting empty: %v", err)
		c = cache.New()
	}

	cpDir := *checkpointDir
	if cpDir == "" {
		cpDir, err = cache.DefaultCheckpointDir()
		if err != nil {
			log.Printf("sokobench: warning: no checkpoint directory available, run will not be resumable: %v", err)
		}
	}
	var checkpoints *cache.CheckpointStore
	if cpDir != "" {
		checkpoints, err = cache.OpenCheckpointStore(cpDir)
		if err != nil {
			log.Printf("sokobench: warning: checkpoint store unavailable, run will not be resumable: %v", err)
		} else {
			defer checkpoints.Close()
		}
	}

	opts := bench.Options{SolverVersion: *version, MaxNodes: *maxNodes, Concurrency: *concurrency, Checkpoint: checkpoints}
	start := time.Now()
	perCorpus, overall, err := bench.Run(context.Background(), corpora, c, opts)
	if err != nil {
		log.Fatalf("sokobench: run failed: %v", err)
	}
	elapsed := time.Since(start)

	if checkpoints != nil {
		for _, co := range corpora {
			st := perCorpus[co.Label]
			if err := checkpoints.SaveSummary(cache.RunSummary{
				CorpusLabel:   co.Label,
				TotalPuzzles:  st.Total,
				Completed:     st.Solved + st.HitLimit + st.Unsolvable,
				SolverVersion: *version,
			}); err != nil {
				log.Printf("sokobench: warning: checkpoint summary save failed for %s: %v", co.Label, err)
			}
		}
	}

	for _, co := range corpora {
		st := perCorpus[co.Label]
		if co.Label == "generated" {
			st.FallbackSkipped = fallbackSkipped
		}
		fmt.Printf("%s: total=%d solved=%d hit_limit=%d unsolvable=%d parse_errors=%d fallback_skipped=%d avg_nodes=%.1f avg_time_ms=%.2f avg_solution_length=%.1f\n",
			co.Label, st.Total, st.Solved, st.HitLimit, st.Unsolvable, st.ParseErrors, st.FallbackSkipped, st.AvgNodes, st.AvgTimeMs, st.AvgSolutionLength)
	}
	fmt.Printf("overall: total=%d solved=%d hit_limit=%d unsolvable=%d avg_nodes=%.1f avg_time_ms=%.2f avg_solution_length=%.1f cache_hit_rate=%.1f%% wall_time=%s\n",
		overall.Total, overall.Solved, overall.HitLimit, overall.Unsolvable, overall.AvgNodes, overall.AvgTimeMs, overall.AvgSolutionLength, overall.CacheHitRate, elapsed)

	if err := c.Save(*cachePath); err != nil {
		fmt.Fprintf(os.Stderr, "sokobench: warning: cache save failed: %v\n", err)
	}
	if *litePath != "" {
		if err := c.SaveLite(*litePath); err != nil {
			fmt.Fprintf(os.Stderr, "sokobench: warning: lite cache save failed: %v\n", err)
		}
	}
	// Exit code 0 on normal completion (including all puzzles timing out);
	// cache I/O failures are reported but never change the exit code
	// (spec.md §7 "CacheIOFailure"). Only corpus read failures, handled
	// above in corpusFlag.Set via flag.Parse's own fatal exit, are fatal.
}
