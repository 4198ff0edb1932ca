package solver

import "container/heap"

// frontierItem is one entry in the open-set min-heap, keyed by f = g + h.
// Ties break by insertion order (seq), which is all spec.md §4.D requires
// for reproducibility ("no secondary key required for correctness") —
// container/heap is not a stable structure on its own, so seq supplies
// the deterministic tie-break explicitly.
type frontierItem struct {
	f, seq int
	node   int32
}

// frontier is a container/heap priority queue, the same idiom
// `eng618-parable-bloom`'s level-builder validator uses for its
// best-first mask search (priorityQueueMask in solvability.go).
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// newFrontier returns an initialized empty frontier ready for heap.Push.
func newFrontier() *frontier {
	fr := &frontier{}
	heap.Init(fr)
	return fr
}
