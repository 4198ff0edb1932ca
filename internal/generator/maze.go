// Package generator implements the reverse-scramble level generator
// (spec.md §4.E): carve a maze, place goals, seat boxes on them, then
// scramble backward via legal pulls so every produced puzzle is solvable
// by construction.
package generator

import (
	"math/rand"

	"github.com/sokolabs/sokosolve/internal/puzzle"
)

// carveMaze builds a width x height terrain grid (must be odd-sized on
// both axes for the two-steps-at-a-time backtracker to reach every cell)
// via recursive backtracking from (1,1): spec.md §4.E step 1.
func carveMaze(width, height int, rng *rand.Rand) []puzzle.Terrain {
	terrain := make([]puzzle.Terrain, width*height)
	for i := range terrain {
		terrain[i] = puzzle.Wall
	}
	idx := func(x, y int) int { return y*width + x }

	var carve func(x, y int)
	carve = func(x, y int) {
		terrain[idx(x, y)] = puzzle.Floor
		dirs := []puzzle.Direction{puzzle.Up, puzzle.Down, puzzle.Left, puzzle.Right}
		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

		for _, d := range dirs {
			dx, dy := d.Delta()
			nx, ny := x+2*dx, y+2*dy
			if nx <= 0 || nx >= width-1 || ny <= 0 || ny >= height-1 {
				continue
			}
			if terrain[idx(nx, ny)] != puzzle.Wall {
				continue
			}
			terrain[idx(x+dx, y+dy)] = puzzle.Floor
			carve(nx, ny)
		}
	}
	carve(1, 1)
	return terrain
}

// floorCells returns every floor cell in row-major order, for
// deterministic (seed-driven) candidate enumeration downstream.
func floorCells(width, height int, terrain []puzzle.Terrain) []puzzle.Position {
	var cells []puzzle.Position
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if terrain[y*width+x] == puzzle.Floor {
				cells = append(cells, puzzle.Position{X: x, Y: y})
			}
		}
	}
	return cells
}
