// Package bench implements the batch benchmark driver (spec.md §4.G):
// it walks one or more corpora, consults and populates the solution
// cache, and reports per-corpus and overall throughput statistics.
package bench

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sokolabs/sokosolve/internal/cache"
	"github.com/sokolabs/sokosolve/internal/puzzle"
	"github.com/sokolabs/sokosolve/internal/solver"
)

// Corpus is one named source of puzzles (spec.md §4.G "Input").
type Corpus struct {
	Label string
	Text  string
}

// Stats is the aggregate reported for one corpus, or for a run as a
// whole (spec.md §4.G "Procedure" emits this shape per-corpus and
// overall).
type Stats struct {
	Total             int
	Solved            int
	HitLimit          int
	Unsolvable        int
	ParseErrors       int
	FallbackSkipped   int
	AvgNodes          float64
	AvgTimeMs         float64
	AvgSolutionLength float64
	CacheHitRate      float64
}

// Options configures a benchmark Run.
type Options struct {
	SolverVersion string
	MaxNodes      int
	Concurrency   int // max puzzles solved in parallel; <=1 means sequential

	// Checkpoint, if non-nil, is consulted before solving a puzzle and
	// updated immediately after, so an interrupted run can resume without
	// redoing already-finished puzzles (spec.md §4.F / §4.G resumability).
	Checkpoint *cache.CheckpointStore

	// Logger receives non-fatal warnings (a checkpoint write failure never
	// aborts the run, per the checkpoint store's own "never blocks a run"
	// contract). Defaults to log.Default() when nil.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Run walks every corpus, consulting c for hits and invoking the solver
// on misses, and returns per-corpus stats plus the overall total (spec.md
// §4.G). Parse errors abort only the offending puzzle (spec.md §4.G
// "Failure semantics").
func Run(ctx context.Context, corpora []Corpus, c *cache.Cache, opts Options) (perCorpus map[string]Stats, overall Stats, err error) {
	perCorpus = make(map[string]Stats, len(corpora))

	for _, corpus := range corpora {
		levels, parseErrs := puzzle.ParseAll(corpus.Text, corpus.Label)
		st, runErr := runCorpus(ctx, corpus.Label, levels, c, opts)
		if runErr != nil {
			return nil, Stats{}, fmt.Errorf("bench: corpus %s: %w", corpus.Label, runErr)
		}
		st.ParseErrors = len(parseErrs)
		perCorpus[corpus.Label] = st
		overall = mergeStats(overall, st)
	}
	overall.CacheHitRate = c.HitRate()
	return perCorpus, overall, nil
}

func runCorpus(ctx context.Context, label string, levels []*puzzle.Level, c *cache.Cache, opts Options) (Stats, error) {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu    sync.Mutex
		stats Stats
	)
	stats.Total = len(levels)

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, concurrency)

	for _, lvl := range levels {
		lvl := lvl
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return solveOne(label, lvl, c, opts, &mu, &stats)
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	if stats.Solved > 0 {
		stats.AvgSolutionLength /= float64(stats.Solved)
	}
	denom := stats.Solved + stats.HitLimit + stats.Unsolvable
	if denom > 0 {
		stats.AvgNodes /= float64(denom)
		stats.AvgTimeMs /= float64(denom)
	}
	return stats, nil
}

func solveOne(label string, lvl *puzzle.Level, c *cache.Cache, opts Options, mu *sync.Mutex, stats *Stats) error {
	digest := puzzle.Digest(lvl)

	if entry, ok := c.Lookup(digest, opts.SolverVersion); ok {
		accumulate(mu, stats, entry.Solved, entry.HitLimit, int(entry.NodesExplored), entry.TimeMs, int(entry.MoveCount))
		return nil
	}

	if opts.Checkpoint != nil {
		entry, ok, err := opts.Checkpoint.LoadEntry(label, digest)
		if err != nil {
			opts.logger().Printf("bench: warning: checkpoint read failed for %s/%s: %v", label, digest, err)
		} else if ok && entry.SolverVersion == opts.SolverVersion {
			c.Store(digest, entry)
			accumulate(mu, stats, entry.Solved, entry.HitLimit, int(entry.NodesExplored), entry.TimeMs, int(entry.MoveCount))
			return nil
		}
	}

	start := time.Now()
	r := solver.SolveBudget(lvl, opts.MaxNodes)
	elapsed := time.Since(start)

	var solutionPtr *string
	if r.Solvable {
		s := solutionString(r.Solution)
		solutionPtr = &s
	}
	entry := cache.Entry{
		SourceLabel:   label,
		Solution:      solutionPtr,
		Solved:        r.Solvable,
		HitLimit:      r.HitLimit,
		NodesExplored: uint64(r.NodesExplored),
		TimeMs:        float64(elapsed.Milliseconds()),
		MoveCount:     uint32(len(r.Solution)),
		CachedAt:      time.Now(),
		SolverVersion: opts.SolverVersion,
	}
	c.Store(digest, entry)
	if opts.Checkpoint != nil {
		if err := opts.Checkpoint.MarkDone(label, digest, entry); err != nil {
			opts.logger().Printf("bench: warning: checkpoint write failed for %s/%s: %v", label, digest, err)
		}
	}

	accumulate(mu, stats, r.Solvable, r.HitLimit, r.NodesExplored, entry.TimeMs, len(r.Solution))
	return nil
}

func accumulate(mu *sync.Mutex, stats *Stats, solved, hitLimit bool, nodes int, timeMs float64, moveCount int) {
	mu.Lock()
	defer mu.Unlock()
	switch {
	case solved:
		stats.Solved++
		stats.AvgSolutionLength += float64(moveCount)
	case hitLimit:
		stats.HitLimit++
	default:
		stats.Unsolvable++
	}
	stats.AvgNodes += float64(nodes)
	stats.AvgTimeMs += timeMs
}

func solutionString(moves []puzzle.Direction) string {
	buf := make([]byte, len(moves))
	for i, d := range moves {
		buf[i] = d.Glyph()
	}
	return string(buf)
}

func mergeStats(a, b Stats) Stats {
	total := a.Total + b.Total
	solved := a.Solved + b.Solved
	hitLimit := a.HitLimit + b.HitLimit
	unsolvable := a.Unsolvable + b.Unsolvable

	weightedNodes := a.AvgNodes*float64(a.Solved+a.HitLimit+a.Unsolvable) + b.AvgNodes*float64(b.Solved+b.HitLimit+b.Unsolvable)
	weightedTime := a.AvgTimeMs*float64(a.Solved+a.HitLimit+a.Unsolvable) + b.AvgTimeMs*float64(b.Solved+b.HitLimit+b.Unsolvable)
	weightedSolLen := a.AvgSolutionLength*float64(a.Solved) + b.AvgSolutionLength*float64(b.Solved)

	merged := Stats{
		Total:           total,
		Solved:          solved,
		HitLimit:        hitLimit,
		Unsolvable:      unsolvable,
		ParseErrors:     a.ParseErrors + b.ParseErrors,
		FallbackSkipped: a.FallbackSkipped + b.FallbackSkipped,
	}
	if denom := solved + hitLimit + unsolvable; denom > 0 {
		merged.AvgNodes = weightedNodes / float64(denom)
		merged.AvgTimeMs = weightedTime / float64(denom)
	}
	if solved > 0 {
		merged.AvgSolutionLength = weightedSolLen / float64(solved)
	}
	return merged
}
