package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (no cutting)
	MoveFeed                    // G1: linear feed (cutting move in XY plane)
	MovePlunge                  // G1 with Z decreasing: knife entering the pizza
	MoveRetract                 // Z increasing: knife leaving the pizza
)

// Move represents a single parsed movement.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// Length returns the XY distance covered by the move.
func (m Move) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// ParseGCode parses GCode text into moves, tracking absolute position and
// classifying each G0/G1 command. Comments in ';' or '(...)' form and
// non-motion commands are skipped.
func ParseGCode(code string) []Move {
	var moves []Move
	curX, curY, curZ, curFeed := 0.0, 0.0, 0.0, 0.0

	for _, line := range strings.Split(code, "\n") {
		line = stripComments(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		word, _, _ := strings.Cut(upper, " ")
		var isRapid bool
		switch word {
		case "G0", "G00":
			isRapid = true
		case "G1", "G01":
		default:
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			}
		}

		moves = append(moves, Move{
			Type:     classifyMove(isRapid, curZ, newZ, curX != newX || curY != newY),
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			FeedRate: newFeed,
		})
		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// stripComments removes ';' comments and every '(...)' group.
func stripComments(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	for {
		open := strings.Index(line, "(")
		if open < 0 {
			break
		}
		end := strings.LastIndex(line, ")")
		if end < open {
			line = line[:open]
			break
		}
		line = line[:open] + line[end+1:]
	}
	return strings.TrimSpace(line)
}

// classifyMove determines the MoveType based on movement characteristics.
func classifyMove(isRapid bool, fromZ, toZ float64, hasXY bool) MoveType {
	zDelta := toZ - fromZ

	switch {
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	case isRapid:
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	default:
		return MoveFeed
	}
}

// Stats summarises a parsed program.
type Stats struct {
	Plunges     int
	CutLength   float64 // XY distance travelled below Z=0
	RapidLength float64
	MinX, MinY  float64
	MaxX, MaxY  float64
	DeepestZ    float64
}

// Analyze totals cut and rapid distances and the XY extent of cutting moves.
func Analyze(moves []Move) Stats {
	s := Stats{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, m := range moves {
		s.DeepestZ = math.Min(s.DeepestZ, m.ToZ)
		switch m.Type {
		case MovePlunge:
			s.Plunges++
		case MoveRapid:
			s.RapidLength += m.Length()
		case MoveFeed:
			if m.FromZ < 0 && m.ToZ < 0 {
				s.CutLength += m.Length()
				s.MinX = math.Min(s.MinX, math.Min(m.FromX, m.ToX))
				s.MinY = math.Min(s.MinY, math.Min(m.FromY, m.ToY))
				s.MaxX = math.Max(s.MaxX, math.Max(m.FromX, m.ToX))
				s.MaxY = math.Max(s.MaxY, math.Max(m.FromY, m.ToY))
			}
		}
	}
	if s.CutLength == 0 {
		s.MinX, s.MinY, s.MaxX, s.MaxY = 0, 0, 0, 0
	}
	return s
}
