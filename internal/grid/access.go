package grid

import "slices"

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (string, error) {
	if err := g.checkCell("Get", row, col); err != nil {
		return "", err
	}
	return g.cells[row][col], nil
}

// Set stores value at (row, col).
func (g *Grid) Set(value string, row, col int) error {
	if g.empty() {
		return invalidState("Set", "cannot write to an empty table")
	}
	if err := g.checkCell("Set", row, col); err != nil {
		return err
	}
	g.cells[row][col] = value
	return nil
}

// SetValue is Set for values of unknown type, such as decoded JSON. Only
// strings are accepted; conversion to text belongs to the caller.
func (g *Grid) SetValue(value any, row, col int) error {
	s, ok := value.(string)
	if !ok {
		return invalidArgument("Set", "value must be a string, got %T", value)
	}
	if g.empty() {
		return invalidState("Set", "cannot write to an empty table")
	}
	if err := g.checkCell("Set", row, col); err != nil {
		return err
	}
	g.cells[row][col] = s
	return nil
}

// GetRow returns a copy of the row at index.
func (g *Grid) GetRow(index int) ([]string, error) {
	if index < 0 || index >= g.RowCount() {
		return nil, outOfRange("GetRow", "row index %d not in [0, %d)", index, g.RowCount())
	}
	return slices.Clone(g.cells[index]), nil
}

// GetColumn returns a copy of the column at index, top to bottom.
func (g *Grid) GetColumn(index int) ([]string, error) {
	if index < 0 || index >= g.ColumnCount() {
		return nil, outOfRange("GetColumn", "column index %d not in [0, %d)", index, g.ColumnCount())
	}
	col := make([]string, len(g.cells))
	for i, row := range g.cells {
		col[i] = row[index]
	}
	return col, nil
}

// Line returns a copy of the row or column at index.
func (g *Grid) Line(axis Axis, index int) ([]string, error) {
	switch axis {
	case Row:
		return g.GetRow(index)
	case Column:
		return g.GetColumn(index)
	}
	return nil, invalidArgument("Line", "unknown axis: %s", axis)
}

func (g *Grid) checkCell(op string, row, col int) error {
	if row < 0 || row >= g.RowCount() {
		return outOfRange(op, "row index %d not in [0, %d)", row, g.RowCount())
	}
	if col < 0 || col >= g.ColumnCount() {
		return outOfRange(op, "column index %d not in [0, %d)", col, g.ColumnCount())
	}
	return nil
}
