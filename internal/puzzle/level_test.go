package puzzle

import "testing"

func TestNewLevelRejectsBadDimensions(t *testing.T) {
	_, err := NewLevel(0, 0, nil, Position{}, nil, Origin{})
	if err != ErrInvalidLevel {
		t.Fatalf("err = %v, want ErrInvalidLevel", err)
	}
}

func TestNewLevelDedupesDuplicateBoxes(t *testing.T) {
	terrain := make([]Terrain, 3*3)
	for i := range terrain {
		terrain[i] = Floor
	}
	boxes := []Position{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	lvl, err := NewLevel(3, 3, terrain, Position{X: 0, Y: 0}, boxes, Origin{})
	if err != nil {
		t.Fatal(err)
	}
	if len(lvl.Boxes) != 2 {
		t.Fatalf("boxes = %v, want 2 distinct cells", lvl.Boxes)
	}
}

func TestZeroGoalsZeroBoxesIsSolved(t *testing.T) {
	terrain := make([]Terrain, 2*2)
	for i := range terrain {
		terrain[i] = Floor
	}
	lvl, err := NewLevel(2, 2, terrain, Position{}, nil, Origin{})
	if err != nil {
		t.Fatal(err)
	}
	if !lvl.Solved(lvl.Boxes) {
		t.Error("a level with zero boxes should already be solved")
	}
}

func TestSortPositionsOrdersByRowThenColumn(t *testing.T) {
	ps := []Position{{X: 5, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 9, Y: 0}}
	SortPositions(ps)
	want := []Position{{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 1, Y: 1}, {X: 5, Y: 1}}
	for i := range want {
		if ps[i] != want[i] {
			t.Fatalf("ps = %v, want %v", ps, want)
		}
	}
}
