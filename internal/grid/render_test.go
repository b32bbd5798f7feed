package grid

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var sample = [][]string{{"a", "bb"}, {"ccc", "d"}}

func TestColumnWidths(t *testing.T) {
	g := mustParse(t, sample)
	if diff := cmp.Diff([]int{3, 2}, g.ColumnWidths()); diff != "" {
		t.Errorf("ColumnWidths() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBordered(t *testing.T) {
	tests := []struct {
		name  string
		align Alignment
		opts  []RenderOption
		want  []string
	}{
		{
			name:  "left box",
			align: AlignLeft,
			want: []string{
				"┌─────┬────┐",
				"│ a   │ bb │",
				"├─────┼────┤",
				"│ ccc │ d  │",
				"└─────┴────┘",
			},
		},
		{
			name:  "right box",
			align: AlignRight,
			want: []string{
				"┌─────┬────┐",
				"│   a │ bb │",
				"├─────┼────┤",
				"│ ccc │  d │",
				"└─────┴────┘",
			},
		},
		{
			name:  "center box",
			align: AlignCenter,
			want: []string{
				"┌─────┬────┐",
				"│  a  │ bb │",
				"├─────┼────┤",
				"│ ccc │ d  │",
				"└─────┴────┘",
			},
		},
		{
			name:  "left ascii",
			align: AlignLeft,
			opts:  []RenderOption{WithStyle(StyleASCII)},
			want: []string{
				"+-----+----+",
				"| a   | bb |",
				"+-----+----+",
				"| ccc | d  |",
				"+-----+----+",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, sample)
			got, err := g.RenderBordered(tt.align, tt.opts...)
			if err != nil {
				t.Fatalf("RenderBordered() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, strings.Split(got, "\n")); diff != "" {
				t.Errorf("RenderBordered() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderBordered_SeparatorSegments(t *testing.T) {
	g := mustParse(t, sample)
	out, err := g.RenderBordered(AlignLeft, WithStyle(StyleASCII))
	if err != nil {
		t.Fatal(err)
	}
	first := strings.Split(out, "\n")[0]
	segments := strings.Split(strings.Trim(first, "+"), "+")
	if len(segments) != 2 || len(segments[0]) != 5 || len(segments[1]) != 4 {
		t.Errorf("separator segments = %q, want lengths 5 and 4", segments)
	}
}

func TestRenderBordered_CenterOddRemainder(t *testing.T) {
	g := mustParse(t, [][]string{{"abcd"}, {"a"}})
	out, err := g.RenderBordered(AlignCenter)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if want := "│  a   │"; lines[3] != want {
		t.Errorf("centered row = %q, want %q", lines[3], want)
	}
}

func TestRenderBordered_SingleRowAndEmptyCells(t *testing.T) {
	g, _ := Create(1, 2)
	out, err := g.RenderBordered(AlignLeft)
	if err != nil {
		t.Fatal(err)
	}
	want := "┌──┬──┐\n│  │  │\n└──┴──┘"
	if out != want {
		t.Errorf("RenderBordered() = %q, want %q", out, want)
	}
}

func TestRenderBordered_WideRunes(t *testing.T) {
	g := mustParse(t, [][]string{{"日本"}, {"ab"}})
	out, err := g.RenderBordered(AlignLeft)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if want := "│ ab   │"; lines[3] != want {
		t.Errorf("row = %q, want %q", lines[3], want)
	}
}

func TestRenderBordered_Rejected(t *testing.T) {
	g := mustParse(t, sample)

	if _, err := g.RenderBordered(Alignment(0)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RenderBordered(0) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := g.RenderBordered(AlignLeft, WithStyle(Style(7))); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RenderBordered(style 7) error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
	}{
		{"Left", AlignLeft}, {"L", AlignLeft}, {"l", AlignLeft},
		{"Right", AlignRight}, {"R", AlignRight},
		{"Center", AlignCenter}, {"C", AlignCenter}, {" center ", AlignCenter},
	}
	for _, tt := range tests {
		got, err := ParseAlignment(tt.in)
		if err != nil {
			t.Errorf("ParseAlignment(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlignment(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "middle", "X", "Centre"} {
		if _, err := ParseAlignment(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseAlignment(%q) error = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestParseStyle(t *testing.T) {
	if s, err := ParseStyle("ASCII"); err != nil || s != StyleASCII {
		t.Errorf("ParseStyle(ASCII) = %v, %v", s, err)
	}
	if s, err := ParseStyle("box"); err != nil || s != StyleBox {
		t.Errorf("ParseStyle(box) = %v, %v", s, err)
	}
	if _, err := ParseStyle("fancy"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseStyle(fancy) error = %v, want ErrInvalidArgument", err)
	}
}

func TestRenderCSV(t *testing.T) {
	g := mustParse(t, sample)
	got, err := g.RenderCSV()
	if err != nil {
		t.Fatalf("RenderCSV() error = %v", err)
	}
	if want := "a,bb\nccc,d"; got != want {
		t.Errorf("RenderCSV() = %q, want %q", got, want)
	}
}

func TestRenderCSV_NoQuoting(t *testing.T) {
	g := mustParse(t, [][]string{{"a,b", `"q"`}})
	got, _ := g.RenderCSV()
	if want := `a,b,"q"`; got != want {
		t.Errorf("RenderCSV() = %q, want %q", got, want)
	}
}

func TestString(t *testing.T) {
	g := mustParse(t, sample)
	want, _ := g.RenderBordered(AlignLeft)
	if g.String() != want {
		t.Errorf("String() = %q, want %q", g.String(), want)
	}
}
