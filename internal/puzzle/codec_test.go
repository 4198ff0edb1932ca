package puzzle

import "testing"

func TestParseFindsPlayer(t *testing.T) {
	lvl, err := Parse("#####\n#@$.#\n#####", Origin{Source: "test", Number: 1})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.Width != 5 || lvl.Height != 3 {
		t.Fatalf("dims = %dx%d, want 5x3", lvl.Width, lvl.Height)
	}
	if lvl.Player != (Position{X: 1, Y: 1}) {
		t.Errorf("player = %v, want (1,1)", lvl.Player)
	}
	if len(lvl.Boxes) != 1 || lvl.Boxes[0] != (Position{X: 2, Y: 1}) {
		t.Errorf("boxes = %v, want [(2,1)]", lvl.Boxes)
	}
	if len(lvl.Goals) != 1 || lvl.Goals[0] != (Position{X: 3, Y: 1}) {
		t.Errorf("goals = %v, want [(3,1)]", lvl.Goals)
	}
}

func TestParseNoPlayerIsInvalid(t *testing.T) {
	_, err := Parse("#####\n#$$.#\n#####", Origin{Source: "test"})
	if err != ErrInvalidLevel {
		t.Fatalf("err = %v, want ErrInvalidLevel", err)
	}
}

func TestParseRightPadsShortLines(t *testing.T) {
	lvl, err := Parse("#####\n#@\n#####", Origin{Source: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lvl.Width != 5 {
		t.Fatalf("width = %d, want 5 (max line length)", lvl.Width)
	}
	// The short middle row's missing cells pad to floor, not wall.
	if lvl.TerrainAt(Position{X: 4, Y: 1}) != Floor {
		t.Errorf("padded cell should be floor")
	}
}

func TestEmitParseRoundtrip(t *testing.T) {
	cases := []string{
		"#####\n#@$.#\n#####",
		"####\n#@*#\n####",
		"######\n#    #\n# $. #\n#@   #\n######",
	}
	for _, src := range cases {
		lvl, err := Parse(src, Origin{Source: "rt"})
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		rendered := Emit(lvl)
		reparsed, err := Parse(rendered, Origin{Source: "rt2", Number: 9})
		if err != nil {
			t.Fatalf("Parse(Emit(...)): %v", err)
		}
		if reparsed.Width != lvl.Width || reparsed.Height != lvl.Height {
			t.Fatalf("dims changed across roundtrip: %dx%d vs %dx%d",
				reparsed.Width, reparsed.Height, lvl.Width, lvl.Height)
		}
		if reparsed.Player != lvl.Player {
			t.Errorf("player changed across roundtrip: %v vs %v", reparsed.Player, lvl.Player)
		}
		if len(reparsed.Boxes) != len(lvl.Boxes) {
			t.Fatalf("box count changed across roundtrip")
		}
		for i := range lvl.Boxes {
			if lvl.Boxes[i] != reparsed.Boxes[i] {
				t.Errorf("box %d changed: %v vs %v", i, lvl.Boxes[i], reparsed.Boxes[i])
			}
		}
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				p := Position{X: x, Y: y}
				if lvl.TerrainAt(p) != reparsed.TerrainAt(p) {
					t.Errorf("terrain at %v changed across roundtrip", p)
				}
			}
		}
	}
}

func TestDigestIgnoresMetadata(t *testing.T) {
	const src = "#####\n#@$.#\n#####"
	a, err := Parse(src, Origin{Source: "a", Number: 1, Difficulty: "easy"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse(src, Origin{Source: "b", Number: 2, Difficulty: "hard"})
	if err != nil {
		t.Fatal(err)
	}
	a.Metadata = Metadata{GeneratorIterations: 3, OptimalMoves: 1, HasOptimalMoves: true}

	if Digest(a) != Digest(b) {
		t.Error("digest depends on origin/metadata, but spec requires it not to")
	}
}

func TestParseAllSplitsOnHeaders(t *testing.T) {
	text := "; 1\n#####\n#@$.#\n#####\n; 2\n####\n#@*#\n####\n"
	levels, errs := ParseAll(text, "corpus")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(levels))
	}
	if levels[0].Origin.Number != 1 || levels[1].Origin.Number != 2 {
		t.Errorf("puzzle numbers = %d,%d, want 1,2", levels[0].Origin.Number, levels[1].Origin.Number)
	}
}

func TestParseAllSkipsOnlyTheBadBlock(t *testing.T) {
	text := "; 1\n#####\n#@$.#\n#####\n; 2\nnoplayerhere\n; 3\n####\n#@*#\n####\n"
	levels, errs := ParseAll(text, "corpus")
	if len(levels) != 2 {
		t.Fatalf("got %d good levels, want 2", len(levels))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
}

func TestRenderWithCoordinates(t *testing.T) {
	lvl, err := Parse("#####\n#@$.#\n#####", Origin{Source: "t"})
	if err != nil {
		t.Fatal(err)
	}
	out := RenderWithCoordinates(lvl, lvl.Player, lvl.Boxes)
	if out == "" {
		t.Fatal("empty render")
	}
}
