package cache

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// CheckpointStore is a supplemental, non-authoritative record of which
// corpus puzzles a benchmark run has already processed, so a long run
// over a large corpus can be interrupted and resumed without re-solving
// puzzles it already finished. It is adapted from internal/storage's
// BadgerDB-backed preferences/stats store: same embedded, file-backed
// key-value engine, repurposed here for a write-heavy append pattern
// instead of a handful of settings keys.
//
// The solution cache (Cache, in cache.go) remains the primary, batched
// result store, flushed to its JSON file once at the end of a run;
// CheckpointStore is the per-puzzle durability layer underneath it,
// persisting each result to disk as soon as it's computed so a killed
// run doesn't lose work the final Cache.Save never got to write. A
// missing or corrupt checkpoint database never blocks a run — it just
// means the run starts from the beginning of the corpus.
type CheckpointStore struct {
	db *badger.DB
}

// OpenCheckpointStore opens (creating if necessary) a checkpoint database
// rooted at dir.
func OpenCheckpointStore(dir string) (*CheckpointStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open checkpoint store %s: %w", dir, err)
	}
	return &CheckpointStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *CheckpointStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// MarkDone persists e for corpusLabel/digest immediately, so a run killed
// before it reaches its final Cache.Save still has this puzzle's result
// on disk for the next invocation to pick up.
func (s *CheckpointStore) MarkDone(corpusLabel, digest string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache: marshal checkpoint entry: %w", err)
	}
	key := []byte(corpusLabel + "/" + digest)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// LoadEntry returns the entry persisted for corpusLabel/digest by a prior
// (possibly interrupted) run, or ok=false if none exists.
func (s *CheckpointStore) LoadEntry(corpusLabel, digest string) (e Entry, ok bool, err error) {
	key := []byte(corpusLabel + "/" + digest)
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(key)
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	return e, ok, err
}

// RunSummary is a small progress snapshot persisted so a resumed run can
// report how far the prior attempt got before reconciling against the
// corpus again.
type RunSummary struct {
	CorpusLabel   string `json:"corpus_label"`
	TotalPuzzles  int    `json:"total_puzzles"`
	Completed     int    `json:"completed"`
	SolverVersion string `json:"solver_version"`
}

func summaryKey(corpusLabel string) []byte {
	return []byte("summary/" + corpusLabel)
}

// SaveSummary persists the latest progress snapshot for corpusLabel.
func (s *CheckpointStore) SaveSummary(sum RunSummary) error {
	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("cache: marshal checkpoint summary: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(summaryKey(sum.CorpusLabel), data)
	})
}

// LoadSummary returns the last saved progress snapshot for corpusLabel,
// or ok=false if none exists.
func (s *CheckpointStore) LoadSummary(corpusLabel string) (sum RunSummary, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(summaryKey(corpusLabel))
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sum)
		})
	})
	return sum, ok, err
}
