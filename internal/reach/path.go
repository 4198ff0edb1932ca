package reach

import "github.com/sokolabs/sokosolve/internal/puzzle"

// pathNode is a BFS back-pointer node used only within Path.
type pathNode struct {
	pos  puzzle.Position
	via  puzzle.Direction
	prev *pathNode
}

// Path runs a BFS from start to goal over the given board (boxes treated
// as walls) and returns the sequence of cardinal moves that realizes the
// shortest walk, or ok=false if goal is unreachable. This materializes
// the walk segment spec.md §4.D step 2.d requires before splicing a push
// onto the end of it.
func Path(l *puzzle.Level, boxSet map[puzzle.Position]bool, start, goal puzzle.Position) (moves []puzzle.Direction, ok bool) {
	if start == goal {
		return nil, true
	}
	if !l.Walkable(goal) || boxSet[goal] {
		return nil, false
	}

	visited := map[puzzle.Position]bool{start: true}
	queue := []*pathNode{{pos: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range puzzle.Directions {
			next := cur.pos.Add(d)
			if visited[next] || boxSet[next] || !l.Walkable(next) {
				continue
			}
			visited[next] = true
			n := &pathNode{pos: next, via: d, prev: cur}
			if next == goal {
				return reconstructPath(n), true
			}
			queue = append(queue, n)
		}
	}
	return nil, false
}

func reconstructPath(n *pathNode) []puzzle.Direction {
	var moves []puzzle.Direction
	for cur := n; cur.prev != nil; cur = cur.prev {
		moves = append(moves, cur.via)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}
