// Package gcode turns a recorded cut sequence into a knife toolpath and
// parses toolpaths back into moves for verification and preview.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/slicecut/internal/model"
)

// Generator produces GCode that replays the cuts of a solve result with a
// drag knife. Each cut is a single straight pass at full depth.
type Generator struct {
	Settings model.KnifeSettings
	profile  model.GCodeProfile
}

func New(settings model.KnifeSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.Profile),
	}
}

// WithProfile replaces the post-processor profile named in the settings.
func (g *Generator) WithProfile(p model.GCodeProfile) *Generator {
	g.profile = p
	return g
}

// point is a machine coordinate in mm.
type point struct{ X, Y float64 }

// Generate produces the full program for result. Cuts are emitted in the
// order the partitioner made them; each one starts from whichever end is
// closer to the current knife position.
func (g *Generator) Generate(result model.SolveResult) string {
	var b strings.Builder

	g.writeHeader(&b, result)

	pos := point{}
	for i, c := range result.Cuts {
		pos = g.writeCut(&b, result, c, i+1, pos)
	}

	g.writeFooter(&b)
	return b.String()
}

// toMachine converts grid-edge coordinates to machine coordinates. Machine Y
// grows upward, so row 0 sits at the far edge.
func (g *Generator) toMachine(result model.SolveResult, x, y float64) point {
	cs := g.Settings.CellSize
	return point{X: x * cs, Y: (float64(result.Rows) - y) * cs}
}

func (g *Generator) writeHeader(b *strings.Builder, result model.SolveResult) {
	p := g.profile
	cs := g.Settings.CellSize

	b.WriteString(g.comment("slicecut knife path"))
	b.WriteString(g.comment(fmt.Sprintf("Pizza: %d x %d cells, %.1f x %.1f mm", result.Rows, result.Cols,
		float64(result.Cols)*cs, float64(result.Rows)*cs)))
	b.WriteString(g.comment(fmt.Sprintf("Cuts: %d, Slices: %d, Score: %d", len(result.Cuts), len(result.Slices), result.ValidArea())))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min, Plunge: %.0f mm/min, Depth: %.1f mm",
		g.Settings.FeedRate, g.Settings.PlungeRate, g.Settings.CutDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
}

// writeCut emits one cut and returns the knife position after it.
func (g *Generator) writeCut(b *strings.Builder, result model.SolveResult, c model.Cut, num int, pos point) point {
	p := g.profile
	x1, y1, x2, y2 := c.Line()
	start := g.toMachine(result, x1, y1)
	end := g.toMachine(result, x2, y2)
	if dist(pos, end) < dist(pos, start) {
		start, end = end, start
	}

	r := c.Parent
	b.WriteString(g.comment(fmt.Sprintf("--- Cut %d: %s at %d, rect r%d c%d %dx%d ---", num, c.Axis, c.Position, r.Row, r.Col, r.Width, r.Height)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(start.X), g.format(start.Y)))
	b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-g.Settings.CutDepth), g.format(g.Settings.PlungeRate)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(end.X), g.format(end.Y), g.format(g.Settings.FeedRate)))
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))

	return end
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}

func dist(a, b point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
