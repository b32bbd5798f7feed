package grid

import (
	"fmt"
	"slices"
	"strings"
)

// Direction selects the edge that Add grows.
type Direction int

const (
	Top Direction = iota + 1
	Bottom
	Left
	Right
)

var directionNames = map[Direction]string{
	Top:    "Top",
	Bottom: "Bottom",
	Left:   "Left",
	Right:  "Right",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts Top, Bottom, Left, Right or their first letter,
// in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "t":
		return Top, nil
	case "bottom", "b":
		return Bottom, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, invalidArgument("ParseDirection", "unknown direction: %q", s)
}

// Axis selects rows or columns for the axis-keyed operations.
type Axis int

const (
	Row Axis = iota + 1
	Column
)

func (a Axis) String() string {
	switch a {
	case Row:
		return "Row"
	case Column:
		return "Column"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis accepts Row, Column, R or C, in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row", "r":
		return Row, nil
	case "column", "c":
		return Column, nil
	}
	return 0, invalidArgument("ParseAxis", "unknown axis: %q", s)
}

// InsertRows inserts count empty rows so that the first new row has index
// at. An index past the last row appends instead of failing.
func (g *Grid) InsertRows(at, count int) error {
	const op = "InsertRows"
	if err := checkInsert(op, at, count); err != nil {
		return err
	}
	if g.empty() {
		return invalidState(op, "cannot insert rows into an empty table")
	}
	if err := g.checkGrowth(op, count); err != nil {
		return err
	}
	if err := checkSize(op, len(g.cells)+count, g.ColumnCount(), g.CellLimit()); err != nil {
		return err
	}

	at = min(at, len(g.cells))
	width := g.ColumnCount()
	added := make([][]string, count)
	for i := range added {
		added[i] = make([]string, width)
	}
	g.cells = slices.Insert(g.cells, at, added...)
	return nil
}

// InsertColumns inserts count empty columns so that the first new column
// has index at. An index past the last column appends instead of failing.
func (g *Grid) InsertColumns(at, count int) error {
	const op = "InsertColumns"
	if err := checkInsert(op, at, count); err != nil {
		return err
	}
	if g.empty() {
		return invalidState(op, "cannot insert columns into an empty table")
	}
	if err := g.checkGrowth(op, count); err != nil {
		return err
	}
	if err := checkSize(op, len(g.cells), g.ColumnCount()+count, g.CellLimit()); err != nil {
		return err
	}

	at = min(at, g.ColumnCount())
	blank := make([]string, count)
	for i, row := range g.cells {
		g.cells[i] = slices.Insert(row, at, blank...)
	}
	return nil
}

func checkInsert(op string, at, count int) error {
	if count < 1 {
		return invalidArgument(op, "count must be greater than 0, got %d", count)
	}
	if at < 0 {
		return invalidArgument(op, "index must not be negative, got %d", at)
	}
	return nil
}

// checkGrowth bounds count so that adding it to a dimension cannot overflow.
func (g *Grid) checkGrowth(op string, count int) error {
	if limit := g.CellLimit(); count > limit {
		return invalidArgument(op, "count %d exceeds the limit of %d cells", count, limit)
	}
	return nil
}

// Add grows the grid by count rows (Top, Bottom) or columns (Left, Right)
// at the given edge.
func (g *Grid) Add(where Direction, count int) error {
	switch where {
	case Top:
		return g.InsertRows(0, count)
	case Bottom:
		return g.InsertRows(g.RowCount(), count)
	case Left:
		return g.InsertColumns(0, count)
	case Right:
		return g.InsertColumns(g.ColumnCount(), count)
	}
	return invalidArgument("Add", "unknown direction: %s", where)
}

// DeleteRow removes the row at index.
func (g *Grid) DeleteRow(index int) error {
	const op = "DeleteRow"
	if len(g.cells) <= 1 {
		return invalidState(op, "cannot remove the last row of the table")
	}
	if index < 0 || index >= len(g.cells) {
		return outOfRange(op, "row index %d not in [0, %d)", index, len(g.cells))
	}
	g.cells = slices.Delete(g.cells, index, index+1)
	return nil
}

// DeleteColumn removes the column at index from every row.
func (g *Grid) DeleteColumn(index int) error {
	const op = "DeleteColumn"
	width := g.ColumnCount()
	if width <= 1 {
		return invalidState(op, "cannot remove the last column of the table")
	}
	if index < 0 || index >= width {
		return outOfRange(op, "column index %d not in [0, %d)", index, width)
	}
	for i, row := range g.cells {
		g.cells[i] = slices.Delete(row, index, index+1)
	}
	return nil
}

// Delete removes the row or column at index.
func (g *Grid) Delete(axis Axis, index int) error {
	switch axis {
	case Row:
		return g.DeleteRow(index)
	case Column:
		return g.DeleteColumn(index)
	}
	return invalidArgument("Delete", "unknown axis: %s", axis)
}
