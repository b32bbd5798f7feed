// Package templates renders the HTML views of the sheet server.
//
// Components are written in *.templ files; run `templ generate` after
// editing one to refresh the matching *_templ.go.
package templates

import "github.com/JonMunkholm/gridtable/internal/grid"

// textAlign names the CSS text alignment for a render alignment.
func textAlign(a grid.Alignment) string {
	switch a {
	case grid.AlignRight:
		return "right"
	case grid.AlignCenter:
		return "center"
	default:
		return "left"
	}
}
