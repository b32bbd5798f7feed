package grid

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, rows [][]string) *Grid {
	t.Helper()
	g, err := Parse(rows)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func TestInsertRows(t *testing.T) {
	base := [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}}

	tests := []struct {
		name  string
		at    int
		count int
		want  [][]string
	}{
		{
			name: "at start", at: 0, count: 1,
			want: [][]string{{"", ""}, {"a", "b"}, {"c", "d"}, {"e", "f"}},
		},
		{
			name: "in middle", at: 1, count: 2,
			want: [][]string{{"a", "b"}, {"", ""}, {"", ""}, {"c", "d"}, {"e", "f"}},
		},
		{
			name: "at end", at: 3, count: 1,
			want: [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}, {"", ""}},
		},
		{
			name: "index past end appends", at: 1000, count: 1,
			want: [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}, {"", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, base)
			if err := g.InsertRows(tt.at, tt.count); err != nil {
				t.Fatalf("InsertRows(%d, %d) error = %v", tt.at, tt.count, err)
			}
			if diff := cmp.Diff(tt.want, g.Rows()); diff != "" {
				t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertRows_NewRowsAreIndependent(t *testing.T) {
	g := mustParse(t, [][]string{{"a"}})
	if err := g.InsertRows(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Set("x", 1, 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Get(2, 0); v != "" {
		t.Errorf("Get(2, 0) = %q, inserted rows share storage", v)
	}
}

func TestInsertColumns(t *testing.T) {
	base := [][]string{{"a", "b"}, {"c", "d"}}

	tests := []struct {
		name  string
		at    int
		count int
		want  [][]string
	}{
		{
			name: "at start", at: 0, count: 1,
			want: [][]string{{"", "a", "b"}, {"", "c", "d"}},
		},
		{
			name: "in middle", at: 1, count: 2,
			want: [][]string{{"a", "", "", "b"}, {"c", "", "", "d"}},
		},
		{
			name: "index past end appends", at: 99, count: 1,
			want: [][]string{{"a", "b", ""}, {"c", "d", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, base)
			if err := g.InsertColumns(tt.at, tt.count); err != nil {
				t.Fatalf("InsertColumns(%d, %d) error = %v", tt.at, tt.count, err)
			}
			if diff := cmp.Diff(tt.want, g.Rows()); diff != "" {
				t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsert_Rejected(t *testing.T) {
	tests := []struct {
		name string
		fn   func(g *Grid) error
	}{
		{"rows zero count", func(g *Grid) error { return g.InsertRows(0, 0) }},
		{"rows negative count", func(g *Grid) error { return g.InsertRows(0, -2) }},
		{"rows negative index", func(g *Grid) error { return g.InsertRows(-1, 1) }},
		{"columns zero count", func(g *Grid) error { return g.InsertColumns(0, 0) }},
		{"columns negative index", func(g *Grid) error { return g.InsertColumns(-3, 1) }},
		{"rows huge count", func(g *Grid) error { return g.InsertRows(0, math.MaxInt/2) }},
		{"columns huge count", func(g *Grid) error { return g.InsertColumns(0, math.MaxInt/2) }},
		{"rows max int", func(g *Grid) error { return g.InsertRows(1, math.MaxInt) }},
		{"columns past cell limit", func(g *Grid) error { return g.InsertColumns(2, MaxCells-1) }},
		{"add past cell limit", func(g *Grid) error { return g.Add(Bottom, MaxCells) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, [][]string{{"a", "b"}})
			before := g.Rows()
			if err := tt.fn(g); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
			if diff := cmp.Diff(before, g.Rows()); diff != "" {
				t.Errorf("grid changed on rejected call (-before +after):\n%s", diff)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		where Direction
		want  [][]string
	}{
		{Top, [][]string{{"", ""}, {"a", "b"}}},
		{Bottom, [][]string{{"a", "b"}, {"", ""}}},
		{Left, [][]string{{"", "a", "b"}}},
		{Right, [][]string{{"a", "b", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.where.String(), func(t *testing.T) {
			g := mustParse(t, [][]string{{"a", "b"}})
			if err := g.Add(tt.where, 1); err != nil {
				t.Fatalf("Add(%v) error = %v", tt.where, err)
			}
			if diff := cmp.Diff(tt.want, g.Rows()); diff != "" {
				t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	g := mustParse(t, [][]string{{"a"}})
	if err := g.Add(Direction(42), 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add(unknown) error = %v, want ErrInvalidArgument", err)
	}
	if err := g.Add(Top, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add(Top, 0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"Top", Top}, {"T", Top}, {"bottom", Bottom}, {"B", Bottom},
		{"Left", Left}, {"l", Left}, {"RIGHT", Right}, {"R", Right},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseDirection("up"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseDirection(up) error = %v, want ErrInvalidArgument", err)
	}
}

func TestDeleteRow(t *testing.T) {
	g := mustParse(t, [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}})

	if err := g.DeleteRow(1); err != nil {
		t.Fatalf("DeleteRow(1) error = %v", err)
	}
	want := [][]string{{"a", "b"}, {"e", "f"}}
	if diff := cmp.Diff(want, g.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}

	for _, idx := range []int{-1, 2, 100} {
		if err := g.DeleteRow(idx); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("DeleteRow(%d) error = %v, want ErrOutOfRange", idx, err)
		}
	}

	if err := g.DeleteRow(0); err != nil {
		t.Fatalf("DeleteRow(0) error = %v", err)
	}
	if err := g.DeleteRow(0); !errors.Is(err, ErrInvalidState) {
		t.Errorf("DeleteRow on last row error = %v, want ErrInvalidState", err)
	}
	if g.RowCount() != 1 {
		t.Errorf("RowCount() = %d, want 1", g.RowCount())
	}
}

func TestDeleteColumn(t *testing.T) {
	g := mustParse(t, [][]string{{"a", "b", "c"}, {"d", "e", "f"}})

	if err := g.DeleteColumn(0); err != nil {
		t.Fatalf("DeleteColumn(0) error = %v", err)
	}
	want := [][]string{{"b", "c"}, {"e", "f"}}
	if diff := cmp.Diff(want, g.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}

	if err := g.DeleteColumn(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("DeleteColumn(2) error = %v, want ErrOutOfRange", err)
	}

	if err := g.DeleteColumn(1); err != nil {
		t.Fatalf("DeleteColumn(1) error = %v", err)
	}
	if err := g.DeleteColumn(0); !errors.Is(err, ErrInvalidState) {
		t.Errorf("DeleteColumn on last column error = %v, want ErrInvalidState", err)
	}
	if g.ColumnCount() != 1 {
		t.Errorf("ColumnCount() = %d, want 1", g.ColumnCount())
	}
}

func TestDelete_Axis(t *testing.T) {
	g := mustParse(t, [][]string{{"a", "b"}, {"c", "d"}})

	if err := g.Delete(Column, 1); err != nil {
		t.Fatalf("Delete(Column, 1) error = %v", err)
	}
	if err := g.Delete(Row, 0); err != nil {
		t.Fatalf("Delete(Row, 0) error = %v", err)
	}
	if diff := cmp.Diff([][]string{{"c"}}, g.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	if err := g.Delete(Axis(9), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Delete(unknown axis) error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"Row": Row, "r": Row, "Column": Column, "C": Column} {
		got, err := ParseAxis(in)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAxis("cell"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseAxis(cell) error = %v, want ErrInvalidArgument", err)
	}
}

// TestMutations_StayRectangular applies a long random sequence of structural
// edits and checks the shape after each one.
func TestMutations_StayRectangular(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g, err := Create(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	for step := 0; step < 2000; step++ {
		rows, cols := g.RowCount(), g.ColumnCount()
		before := g.Rows()

		var opErr error
		switch rng.IntN(5) {
		case 0:
			opErr = g.InsertRows(rng.IntN(rows+3), 1+rng.IntN(2))
		case 1:
			opErr = g.InsertColumns(rng.IntN(cols+3), 1+rng.IntN(2))
		case 2:
			opErr = g.DeleteRow(rng.IntN(rows + 1))
		case 3:
			opErr = g.DeleteColumn(rng.IntN(cols + 1))
		case 4:
			opErr = g.Set("v", rng.IntN(rows+1), rng.IntN(cols+1))
		}

		if opErr != nil {
			if diff := cmp.Diff(before, g.Rows()); diff != "" {
				t.Fatalf("step %d: failed op %v modified grid:\n%s", step, opErr, diff)
			}
		}

		width := g.ColumnCount()
		if g.RowCount() < 1 || width < 1 {
			t.Fatalf("step %d: grid shrank to %dx%d", step, g.RowCount(), width)
		}
		for i, row := range g.Rows() {
			if len(row) != width {
				t.Fatalf("step %d: row %d has %d cells, want %d", step, i, len(row), width)
			}
		}

		// keep the grid from growing without bound
		for g.RowCount() > 12 {
			_ = g.DeleteRow(0)
		}
		for g.ColumnCount() > 12 {
			_ = g.DeleteColumn(0)
		}
	}
}
