// Command sokoint is a thin stdio host for the cooperative solver's line
// protocol (spec.md §4.H), the same role cmd/chessplay-uci plays for the
// chess engine's UCI loop.
package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/sokolabs/sokosolve/internal/interactive"
)

func main() {
	h := interactive.NewHost(os.Stdout)
	h.Run(os.Stdin)
}
