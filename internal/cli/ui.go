package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/slicecut/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printResultStats prints the headline numbers of a result on one line.
func printResultStats(w io.Writer, result model.SolveResult, cached bool) {
	parts := []string{
		fmt.Sprintf("%d slices", len(result.Slices)),
		fmt.Sprintf("%d valid", result.ValidCount()),
		fmt.Sprintf("%d cuts", len(result.Cuts)),
	}
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	fmt.Fprintln(w, line+StyleDim.Render(" · ")+statusStyle.Render(status))
}

// slicePalette holds background colours cycled across valid slices.
var slicePalette = []lipgloss.Color{"24", "28", "94", "54", "30", "130", "61", "65"}

// maxPreviewCells bounds the size of grids rendered cell by cell.
const maxPreviewCells = 20000

// renderGrid draws g one character per cell. When result is non-nil each
// valid slice gets a background colour, invalid slices are drawn in red and
// cells outside any slice are dimmed.
func renderGrid(g *model.Grid, result *model.SolveResult) string {
	owner := make([]int, g.Area())
	for i := range owner {
		owner[i] = -1
	}
	var styles []lipgloss.Style
	if result != nil {
		styles = make([]lipgloss.Style, len(result.Slices))
		for i, s := range result.Slices {
			if s.Valid {
				styles[i] = lipgloss.NewStyle().Background(slicePalette[i%len(slicePalette)]).Foreground(colorWhite)
			} else {
				styles[i] = lipgloss.NewStyle().Foreground(colorRed)
			}
			r := s.Rect
			for row := r.Row; row <= r.LastRow() && row < g.Rows; row++ {
				for col := r.Col; col <= r.LastCol() && col < g.Cols; col++ {
					owner[row*g.Cols+col] = i
				}
			}
		}
	}

	var sb strings.Builder
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := string(rune(g.At(row, col)))
			switch idx := owner[row*g.Cols+col]; {
			case result == nil:
				sb.WriteString(cell)
			case idx < 0:
				sb.WriteString(StyleDim.Render(cell))
			default:
				sb.WriteString(styles[idx].Render(cell))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
