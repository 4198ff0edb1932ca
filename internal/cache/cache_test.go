package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLite(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestStoreThenSaveThenReloadYieldsSameEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := New()
	solution := "rrd"
	want := Entry{
		SourceLabel:   "microban",
		Solution:      &solution,
		Solved:        true,
		NodesExplored: 42,
		TimeMs:        1.5,
		MoveCount:     3,
		SolverVersion: "v1",
	}
	c.Store("deadbeefdeadbeef", want)
	require.NoError(t, c.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	got, ok := reloaded.Lookup("deadbeefdeadbeef", "v1")
	require.True(t, ok)
	assert.Equal(t, want.Solved, got.Solved)
	assert.Equal(t, want.MoveCount, got.MoveCount)
	require.NotNil(t, got.Solution)
	assert.Equal(t, *want.Solution, *got.Solution)
}

func TestLookupMismatchedVersionIsAMiss(t *testing.T) {
	c := New()
	c.Store("abc", Entry{Solved: true, SolverVersion: "v1"})
	_, ok := c.Lookup("abc", "v2")
	assert.False(t, ok, "a solver_version mismatch must be reported as a miss")
}

func TestSaveLiteOnlyIncludesSolvedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lite.json")
	c := New()
	solved := "uurr"
	c.Store("solved-one", Entry{Solved: true, Solution: &solved, SolverVersion: "v1"})
	c.Store("hit-limit-one", Entry{Solved: false, HitLimit: true, SolverVersion: "v1"})
	require.NoError(t, c.SaveLite(path))

	// Lite files use a different schema (digest -> move string) than the
	// full cache, so re-parse directly rather than through Load.
	raw, rerr := readLite(path)
	require.NoError(t, rerr)
	assert.Equal(t, map[string]string{"solved-one": solved}, raw)
}

func TestHitRateTracksLookups(t *testing.T) {
	c := New()
	c.Store("x", Entry{Solved: true, SolverVersion: "v1"})
	c.Lookup("x", "v1")  // hit
	c.Lookup("y", "v1")  // miss
	assert.InDelta(t, 50.0, c.HitRate(), 0.001)
}
