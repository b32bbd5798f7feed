package grid

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment positions a cell's text inside its padded column.
type Alignment int

const (
	AlignLeft Alignment = iota + 1
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignCenter:
		return "Center"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

func (a Alignment) valid() bool {
	return a >= AlignLeft && a <= AlignCenter
}

// ParseAlignment accepts Left, Right, Center or L, R, C, in any case.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return AlignLeft, nil
	case "right", "r":
		return AlignRight, nil
	case "center", "c":
		return AlignCenter, nil
	}
	return 0, invalidArgument("ParseAlignment", "unknown alignment: %q", s)
}

// Style is the glyph set used for borders.
type Style int

const (
	// StyleBox draws with Unicode box-drawing characters.
	StyleBox Style = iota
	// StyleASCII draws with +, - and |.
	StyleASCII
)

func (s Style) String() string {
	switch s {
	case StyleBox:
		return "box"
	case StyleASCII:
		return "ascii"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle accepts "box" or "ascii", in any case.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "box":
		return StyleBox, nil
	case "ascii":
		return StyleASCII, nil
	}
	return 0, invalidArgument("ParseStyle", "unknown style: %q", s)
}

// border holds the glyphs for one style. Each junction triple is the left,
// inner and right corner of its separator line.
type border struct {
	horizontal string
	vertical   string
	top        [3]string
	middle     [3]string
	bottom     [3]string
}

var borders = map[Style]border{
	StyleBox: {
		horizontal: "─",
		vertical:   "│",
		top:        [3]string{"┌", "┬", "┐"},
		middle:     [3]string{"├", "┼", "┤"},
		bottom:     [3]string{"└", "┴", "┘"},
	},
	StyleASCII: {
		horizontal: "-",
		vertical:   "|",
		top:        [3]string{"+", "+", "+"},
		middle:     [3]string{"+", "+", "+"},
		bottom:     [3]string{"+", "+", "+"},
	},
}

// RenderOption configures RenderBordered.
type RenderOption func(*renderOptions)

type renderOptions struct {
	style Style
}

// WithStyle selects the border glyphs. The default is StyleBox.
func WithStyle(s Style) RenderOption {
	return func(o *renderOptions) { o.style = s }
}

// RenderBordered draws the grid as a bordered text table. Each column is as
// wide as its widest cell, with one space of padding on both sides. A
// separator line is drawn above the first row, between rows and below the
// last row. Lines are joined with "\n" with no trailing newline.
func (g *Grid) RenderBordered(align Alignment, opts ...RenderOption) (string, error) {
	const op = "RenderBordered"
	if !align.valid() {
		return "", invalidArgument(op, "unknown alignment: %s", align)
	}
	o := renderOptions{style: StyleBox}
	for _, opt := range opts {
		opt(&o)
	}
	b, ok := borders[o.style]
	if !ok {
		return "", invalidArgument(op, "unknown style: %s", o.style)
	}
	if g.empty() {
		return "", invalidState(op, "cannot render an empty table")
	}

	widths := g.ColumnWidths()
	top := separator(b, b.top, widths)
	middle := separator(b, b.middle, widths)
	bottom := separator(b, b.bottom, widths)

	var sb strings.Builder
	sb.WriteString(top)
	padded := make([]string, len(widths))
	for i, row := range g.cells {
		for j, cell := range row {
			padded[j] = pad(cell, widths[j], align)
		}
		sb.WriteByte('\n')
		sb.WriteString(b.vertical + " " + strings.Join(padded, " "+b.vertical+" ") + " " + b.vertical)
		sb.WriteByte('\n')
		if i == len(g.cells)-1 {
			sb.WriteString(bottom)
		} else {
			sb.WriteString(middle)
		}
	}
	return sb.String(), nil
}

// ColumnWidths returns the display width of the widest cell in each column.
func (g *Grid) ColumnWidths() []int {
	widths := make([]int, g.ColumnCount())
	for _, row := range g.cells {
		for j, cell := range row {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func separator(b border, junctions [3]string, widths []int) string {
	segments := make([]string, len(widths))
	for i, w := range widths {
		segments[i] = strings.Repeat(b.horizontal, w+2)
	}
	return junctions[0] + strings.Join(segments, junctions[1]) + junctions[2]
}

// pad widens s to width. Center puts the odd leftover space on the right.
func pad(s string, width int, align Alignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// RenderCSV joins each row's cells with "," and the rows with "\n".
//
// Cells are written verbatim: embedded commas, quotes and newlines are not
// escaped, so the output only round-trips for cells free of them. Use
// csvio.Encode when cells may hold commas, quotes or newlines.
func (g *Grid) RenderCSV() (string, error) {
	if g.empty() {
		return "", invalidState("RenderCSV", "cannot render an empty table")
	}
	lines := make([]string, len(g.cells))
	for i, row := range g.cells {
		lines[i] = strings.Join(row, ",")
	}
	return strings.Join(lines, "\n"), nil
}

// String renders the grid left-aligned with box borders. An empty grid
// renders as "".
func (g *Grid) String() string {
	s, err := g.RenderBordered(AlignLeft)
	if err != nil {
		return ""
	}
	return s
}
