// Package grid provides Grid, a rectangular, mutable table of text cells.
//
// A Grid is created with explicit dimensions or parsed from existing rows,
// edited in place (rows and columns inserted or deleted, cells written) and
// rendered as a box-drawn text table or as minimal CSV.
//
// # Invariants
//
//   - Every row has the same number of cells.
//   - A constructed grid has at least one row and one column; deleting the
//     last row or column fails with [ErrInvalidState].
//   - Row and column accessors return copies; callers never alias the
//     grid's storage.
//   - A rejected operation leaves the grid exactly as it was.
//   - A grid never holds more than MaxCells cells through Create or an
//     insert; oversized requests fail with [ErrInvalidArgument].
//
// # Concurrency
//
// A Grid has no internal locking. Callers that share one across goroutines
// must serialize access themselves.
//
// # Errors
//
// Failures are *[Error] values whose Kind is one of [KindInvalidArgument],
// [KindOutOfRange] or [KindInvalidState]. Use errors.Is with the matching
// sentinel, or [KindOf].
package grid

import (
	"cmp"
	"fmt"
	"slices"
)

// Grid is a rectangular table of text cells, indexed from zero.
//
// The zero value is an empty grid: it reports zero rows and columns and
// rejects rendering and mutation with ErrInvalidState.
type Grid struct {
	cells    [][]string
	maxCells int
}

// MaxCells is the most cells a grid may hold. SetMaxCells lowers it for
// one grid.
const MaxCells = 1 << 28

// Create returns a rows x cols grid with every cell set to "".
// Both dimensions must be positive; there is no defaulting of a missing
// dimension to 1.
func Create(rows, cols int) (*Grid, error) {
	switch {
	case rows <= 0 && cols <= 0:
		return nil, invalidArgument("Create", "cannot create a table with 0 cells (rows=%d, columns=%d)", rows, cols)
	case cols <= 0:
		return nil, invalidArgument("Create", "cannot create a table with 0 columns (columns=%d)", cols)
	case rows <= 0:
		return nil, invalidArgument("Create", "cannot create a table with 0 rows (rows=%d)", rows)
	}
	if err := checkSize("Create", rows, cols, MaxCells); err != nil {
		return nil, err
	}

	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	return &Grid{cells: cells}, nil
}

// Parse builds a grid from rows of text. The input must be non-empty and
// rectangular. The grid stores a deep copy, so later changes to rows do not
// reach it.
func Parse(rows [][]string) (*Grid, error) {
	if err := checkShape("Parse", len(rows), func(i int) int { return len(rows[i]) }); err != nil {
		return nil, err
	}
	return &Grid{cells: copyCells(rows)}, nil
}

// ParseOption configures ParseValues.
type ParseOption func(*parseOptions)

type parseOptions struct {
	cast bool
}

// WithCast makes ParseValues convert non-string cells to text with fmt.Sprint
// instead of rejecting them. Values implementing fmt.Stringer use String.
func WithCast() ParseOption {
	return func(o *parseOptions) { o.cast = true }
}

// ParseValues builds a grid from rows of arbitrary values. Without WithCast
// every cell must already be a string.
func ParseValues(rows [][]any, opts ...ParseOption) (*Grid, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkShape("Parse", len(rows), func(i int) int { return len(rows[i]) }); err != nil {
		return nil, err
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			s, ok := v.(string)
			if !ok {
				if !o.cast {
					return nil, invalidArgument("Parse", "cell (%d, %d) must be a string, got %T", i, j, v)
				}
				s = fmt.Sprint(v)
			}
			cells[i][j] = s
		}
	}
	return &Grid{cells: cells}, nil
}

// checkShape validates that n rows with lengths given by width form a
// non-empty rectangle.
func checkShape(op string, n int, width func(int) int) error {
	if n == 0 {
		return invalidArgument(op, "cannot create a table with 0 rows")
	}
	want := width(0)
	if want == 0 {
		return invalidArgument(op, "cannot create a table with 0 columns")
	}
	for i := 1; i < n; i++ {
		if got := width(i); got != want {
			return invalidArgument(op, "row %d has %d columns, expected %d", i, got, want)
		}
	}
	return nil
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.cells)
}

// ColumnCount returns the number of cells per row.
func (g *Grid) ColumnCount() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

func (g *Grid) empty() bool {
	return len(g.cells) == 0
}

// Rows returns a deep copy of every cell.
func (g *Grid) Rows() [][]string {
	return copyCells(g.cells)
}

// Clone returns an independent copy of g, including its cell limit.
func (g *Grid) Clone() *Grid {
	return &Grid{cells: copyCells(g.cells), maxCells: g.maxCells}
}

// SetMaxCells caps the size later inserts may grow g to. n <= 0 or above
// MaxCells restores MaxCells. Cells already held are not checked.
func (g *Grid) SetMaxCells(n int) {
	if n <= 0 || n > MaxCells {
		n = 0
	}
	g.maxCells = n
}

// CellLimit returns the current cap on g's size.
func (g *Grid) CellLimit() int {
	return cmp.Or(g.maxCells, MaxCells)
}

// checkSize rejects a rows x cols shape above limit cells. Both dimensions
// are positive.
func checkSize(op string, rows, cols, limit int) error {
	if rows > limit/cols {
		return invalidArgument(op, "a %d x %d table exceeds the limit of %d cells", rows, cols, limit)
	}
	return nil
}

// Equal reports whether g and other have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	return slices.EqualFunc(g.cells, other.cells, slices.Equal[[]string])
}

func copyCells(src [][]string) [][]string {
	if src == nil {
		return nil
	}
	dst := make([][]string, len(src))
	for i, row := range src {
		dst[i] = slices.Clone(row)
	}
	return dst
}
