package gcode

import (
	"math"
	"testing"
)

func TestParseGCode_Empty(t *testing.T) {
	moves := ParseGCode("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParseGCode_CommentsOnly(t *testing.T) {
	code := `; This is a comment
; Another comment
( --- Cut 1: Up at 2, rect r0 c0 3x2 ---)
`
	moves := ParseGCode(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParseGCode_RapidAndFeed(t *testing.T) {
	code := "G0 X10.000 Y20.000\nG1 X100.000 Y20.000 F1500.0\n"
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[0].Type != MoveRapid {
		t.Errorf("expected MoveRapid, got %d", moves[0].Type)
	}
	if moves[1].Type != MoveFeed || moves[1].FromX != 10 || moves[1].ToX != 100 {
		t.Errorf("unexpected feed move: %+v", moves[1])
	}
	if moves[1].FeedRate != 1500 {
		t.Errorf("expected feed rate 1500, got %.1f", moves[1].FeedRate)
	}
}

func TestParseGCode_PlungeAndRetract(t *testing.T) {
	code := "G0 X10 Y10\nG0 Z5\nG01 Z-3 F400\nG00 Z5\n"
	moves := ParseGCode(code)
	if len(moves) != 4 {
		t.Fatalf("expected 4 moves, got %d", len(moves))
	}
	if moves[2].Type != MovePlunge || moves[2].FromZ != 5 || moves[2].ToZ != -3 {
		t.Errorf("unexpected plunge: %+v", moves[2])
	}
	if moves[3].Type != MoveRetract {
		t.Errorf("expected MoveRetract, got %d", moves[3].Type)
	}
}

func TestParseGCode_InlineComments(t *testing.T) {
	code := "G1 X50.000 Y50.000 F1500.0 ; cutting move\nG1 X60 (note (nested)) Y70\n"
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[1].ToX != 60 || moves[1].ToY != 70 {
		t.Errorf("expected to (60,70), got (%.3f, %.3f)", moves[1].ToX, moves[1].ToY)
	}
}

func TestParseGCode_NonMovementLines(t *testing.T) {
	code := `G90
G21
G17
G94
G28 X0 Y0
M30
G0 X0.000 Y0.000
G0 Z5.000
`
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Errorf("expected 2 moves (only G0 lines), got %d", len(moves))
	}
}

func TestParseGCode_FeedRateSticky(t *testing.T) {
	moves := ParseGCode("G1 X10.000 Y10.000 F1500.0\nG1 X20.000 Y20.000\n")
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[1].FeedRate != 1500 {
		t.Errorf("expected sticky feed rate 1500, got %.1f", moves[1].FeedRate)
	}
}

func TestParseGCode_NegativeCoordinates(t *testing.T) {
	moves := ParseGCode("G0 X-3.000 Y-3.000\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].ToX != -3 || moves[0].ToY != -3 {
		t.Errorf("expected to (-3,-3), got (%.3f, %.3f)", moves[0].ToX, moves[0].ToY)
	}
}

func TestClassifyMove(t *testing.T) {
	tests := []struct {
		name    string
		isRapid bool
		fromZ   float64
		toZ     float64
		hasXY   bool
		want    MoveType
	}{
		{"rapid XY", true, 5, 5, true, MoveRapid},
		{"rapid retract", true, -3, 5, false, MoveRetract},
		{"feed XY", false, -3, -3, true, MoveFeed},
		{"plunge", false, 5, -3, false, MovePlunge},
		{"retract feed", false, -3, 0, false, MoveRetract},
		{"feed with slight Z", false, -3, -3.0001, true, MoveFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyMove(tt.isRapid, tt.fromZ, tt.toZ, tt.hasXY)
			if got != tt.want {
				t.Errorf("classifyMove() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	code := `G0 Z5
G0 X0 Y0
G0 X30 Y0
G1 Z-3 F400
G1 X30 Y20 F1200
G0 Z5
G0 X0 Y10
G1 Z-3 F400
G1 X30 Y10 F1200
G0 Z5
`
	s := Analyze(ParseGCode(code))

	if s.Plunges != 2 {
		t.Errorf("expected 2 plunges, got %d", s.Plunges)
	}
	if math.Abs(s.CutLength-50) > 1e-9 {
		t.Errorf("expected cut length 50, got %.3f", s.CutLength)
	}
	// 30 along X, then from (30,20) to (0,10).
	wantRapid := 30 + math.Hypot(30, 10)
	if math.Abs(s.RapidLength-wantRapid) > 1e-9 {
		t.Errorf("expected rapid length %.3f, got %.3f", wantRapid, s.RapidLength)
	}
	if s.MinX != 0 || s.MaxX != 30 || s.MinY != 0 || s.MaxY != 20 {
		t.Errorf("unexpected extent (%g,%g)-(%g,%g)", s.MinX, s.MinY, s.MaxX, s.MaxY)
	}
	if s.DeepestZ != -3 {
		t.Errorf("expected deepest Z -3, got %g", s.DeepestZ)
	}
}

func TestAnalyze_NoCuts(t *testing.T) {
	s := Analyze(ParseGCode("G0 X10 Y10\n"))
	if s.CutLength != 0 || s.MaxX != 0 || s.Plunges != 0 {
		t.Errorf("expected empty stats, got %+v", s)
	}
}
