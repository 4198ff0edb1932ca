// Package interactive implements a line-protocol host for the
// cooperative solver (spec.md §4.H), modeled directly on
// internal/uci.UCI's command loop: read a line, dispatch on its first
// token, reply on stdout. "go" starts a solve on a background goroutine;
// "stop" requests cancellation; the solve's completion is reported
// asynchronously once the goroutine returns.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/sokolabs/sokosolve/internal/deadlock"
	"github.com/sokolabs/sokosolve/internal/puzzle"
	"github.com/sokolabs/sokosolve/internal/reach"
	"github.com/sokolabs/sokosolve/internal/solver"
)

// Host runs the line protocol over the given reader/writer pair.
type Host struct {
	out   io.Writer
	outMu sync.Mutex // serializes writes against the async "go" goroutine

	mu      sync.Mutex
	level   *puzzle.Level
	session *solver.Session
	busy    bool
}

// printf writes a reply line, safe to call from the "go" goroutine
// concurrently with the main command loop.
func (h *Host) printf(format string, args ...any) {
	h.outMu.Lock()
	defer h.outMu.Unlock()
	fmt.Fprintf(h.out, format, args...)
}

// NewHost returns a Host that writes replies to out.
func NewHost(out io.Writer) *Host {
	return &Host{out: out}
}

// Run reads commands from in until EOF or a "quit" command.
func (h *Host) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "level":
			h.handleLevel(args)
		case "go":
			h.handleGo(args)
		case "stop":
			h.handleStop()
		case "deadlock":
			h.handleDeadlock()
		case "reachable":
			h.handleReachable()
		case "board":
			h.handleBoard()
		case "quit":
			return
		default:
			h.printf("error unknown command %q\n", cmd)
		}
	}
}

func (h *Host) handleLevel(args []string) {
	if len(args) == 0 {
		h.printf("error level requires a puzzle text argument\n")
		return
	}
	text := strings.ReplaceAll(strings.Join(args, " "), "\\n", "\n")
	lvl, err := puzzle.Parse(text, puzzle.Origin{Source: "interactive"})
	if err != nil {
		h.printf("error %v\n", err)
		return
	}
	h.mu.Lock()
	h.level = lvl
	h.mu.Unlock()
	h.printf("levelok\n")
}

func (h *Host) handleGo(args []string) {
	h.mu.Lock()
	if h.level == nil {
		h.mu.Unlock()
		h.printf("error no level loaded\n")
		return
	}
	if h.busy {
		h.mu.Unlock()
		h.printf("error a solve is already in progress\n")
		return
	}
	maxNodes := solver.DefaultMaxNodes
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			maxNodes = n
		}
	}
	lvl := h.level
	sess := solver.NewSession()
	h.session = sess
	h.busy = true
	h.mu.Unlock()

	go func() {
		r := sess.Solve(lvl, maxNodes)
		h.mu.Lock()
		h.busy = false
		h.mu.Unlock()
		h.reportResult(r)
	}()
}

func (h *Host) handleStop() {
	h.mu.Lock()
	sess := h.session
	h.mu.Unlock()
	if sess == nil {
		h.printf("error no solve in progress\n")
		return
	}
	sess.Stop()
}

func (h *Host) reportResult(r solver.Result) {
	switch {
	case r.Solvable:
		h.printf("solved moves=%s nodes=%d\n", movesToString(r.Solution), r.NodesExplored)
	case r.HitLimit:
		h.printf("hitlimit nodes=%d\n", r.NodesExplored)
	default:
		h.printf("unsolvable nodes=%d\n", r.NodesExplored)
	}
}

func (h *Host) handleDeadlock() {
	h.mu.Lock()
	lvl := h.level
	h.mu.Unlock()
	if lvl == nil {
		h.printf("error no level loaded\n")
		return
	}
	oracle := deadlock.Build(lvl)
	boxSet := puzzle.BoxSet(lvl.Boxes)
	for _, b := range lvl.Boxes {
		if oracle.DeadSquare(b) || deadlock.FreezeDeadlock(lvl, boxSet, b) {
			h.printf("deadlock true\n")
			return
		}
	}
	h.printf("deadlock false\n")
}

func (h *Host) handleReachable() {
	h.mu.Lock()
	lvl := h.level
	h.mu.Unlock()
	if lvl == nil {
		h.printf("error no level loaded\n")
		return
	}
	region := reach.Flood(lvl, lvl.Boxes, lvl.Player)
	h.printf("reachable count=%d canonical=%s\n", region.Len(), region.Canonical)
}

func (h *Host) handleBoard() {
	h.mu.Lock()
	lvl := h.level
	h.mu.Unlock()
	if lvl == nil {
		h.printf("error no level loaded\n")
		return
	}
	h.printf("%s\n", puzzle.RenderWithCoordinates(lvl, lvl.Player, lvl.Boxes))
}

func movesToString(moves []puzzle.Direction) string {
	buf := make([]byte, len(moves))
	for i, d := range moves {
		buf[i] = d.Glyph()
	}
	return string(buf)
}
