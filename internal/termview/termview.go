// Package termview draws icon grids in a terminal using background colours.
package termview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/icons"
	"github.com/gogpu/icons/symbol"
)

// pixel is two spaces so cells look roughly square.
const pixel = "  "

var labelStyle = lipgloss.NewStyle().Faint(true)

// Render returns every icon of arr, one after another, each preceded by a
// state label. Cells without a colour are left blank.
func Render(arr *icons.IconArray) string {
	styles := make(map[symbol.Symbol]lipgloss.Style)
	for s, hex := range arr.Colors().All() {
		styles[s] = lipgloss.NewStyle().Background(lipgloss.Color("#" + hex))
	}

	var sb strings.Builder
	h := int(arr.Height())
	for _, state := range arr.States() {
		g, _ := arr.Icon(state)
		sb.WriteString(labelStyle.Render("state " + strconv.Itoa(state)))
		sb.WriteByte('\n')
		for y := range h {
			for x := range h {
				if st, ok := styles[g.At(x, y)]; ok {
					sb.WriteString(st.Render(pixel))
				} else {
					sb.WriteString(pixel)
				}
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
