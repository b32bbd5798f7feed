package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetSet(t *testing.T) {
	g, err := Create(2, 3)
	if err != nil {
		t.Fatal(err)
	}

	if err := g.Set("hello", 1, 2); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := g.Get(1, 2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Get(1, 2) = %q, want %q", got, "hello")
	}
}

func TestGetSet_OutOfRange(t *testing.T) {
	g, _ := Create(2, 3)

	tests := []struct {
		row, col int
	}{
		{2, 0},
		{0, 3},
		{-1, 0},
		{0, -1},
		{5, 5},
	}

	for _, tt := range tests {
		if _, err := g.Get(tt.row, tt.col); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%d, %d) error = %v, want ErrOutOfRange", tt.row, tt.col, err)
		}
		if err := g.Set("x", tt.row, tt.col); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Set(%d, %d) error = %v, want ErrOutOfRange", tt.row, tt.col, err)
		}
	}
}

func TestSetValue(t *testing.T) {
	g, _ := Create(1, 1)

	if err := g.SetValue(12, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetValue(int) error = %v, want ErrInvalidArgument", err)
	}
	if err := g.SetValue(nil, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetValue(nil) error = %v, want ErrInvalidArgument", err)
	}
	if err := g.SetValue("ok", 0, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetValue out of range error = %v, want ErrOutOfRange", err)
	}
	if err := g.SetValue("ok", 0, 0); err != nil {
		t.Fatalf("SetValue(string) error = %v", err)
	}
	if v, _ := g.Get(0, 0); v != "ok" {
		t.Errorf("Get(0, 0) = %q, want %q", v, "ok")
	}
}

func TestGetRowAndColumn(t *testing.T) {
	g := mustParse(t, [][]string{{"a", "b", "c"}, {"d", "e", "f"}})

	row, err := g.GetRow(1)
	if err != nil {
		t.Fatalf("GetRow(1) error = %v", err)
	}
	if diff := cmp.Diff([]string{"d", "e", "f"}, row); diff != "" {
		t.Errorf("GetRow(1) mismatch (-want +got):\n%s", diff)
	}

	col, err := g.GetColumn(2)
	if err != nil {
		t.Fatalf("GetColumn(2) error = %v", err)
	}
	if diff := cmp.Diff([]string{"c", "f"}, col); diff != "" {
		t.Errorf("GetColumn(2) mismatch (-want +got):\n%s", diff)
	}

	if _, err := g.GetRow(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GetRow(2) error = %v, want ErrOutOfRange", err)
	}
	if _, err := g.GetColumn(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GetColumn(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	g := mustParse(t, [][]string{{"a", "b"}, {"c", "d"}})

	row, _ := g.GetRow(0)
	row[0] = "mutated"
	col, _ := g.GetColumn(1)
	col[1] = "mutated"
	all := g.Rows()
	all[1][0] = "mutated"

	want := [][]string{{"a", "b"}, {"c", "d"}}
	if diff := cmp.Diff(want, g.Rows()); diff != "" {
		t.Errorf("grid changed through returned slices (-want +got):\n%s", diff)
	}
}

func TestLine(t *testing.T) {
	g := mustParse(t, [][]string{{"a", "b"}, {"c", "d"}})

	got, err := g.Line(Row, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c", "d"}, got); diff != "" {
		t.Errorf("Line(Row, 1) mismatch (-want +got):\n%s", diff)
	}

	got, err = g.Line(Column, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("Line(Column, 0) mismatch (-want +got):\n%s", diff)
	}

	if _, err := g.Line(Axis(0), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Line(unknown) error = %v, want ErrInvalidArgument", err)
	}
}
