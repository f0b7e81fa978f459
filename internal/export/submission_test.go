package export

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/piwi3910/slicecut/internal/model"
)

func TestWriteSubmission(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSubmission(&buf, buildLabelsTestResult().Slices, false); err != nil {
		t.Fatalf("WriteSubmission: %v", err)
	}

	want := "3\n0 0 1 1\n0 2 1 2\n0 3 1 3\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteSubmission_ValidOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSubmission(&buf, buildLabelsTestResult().Slices, true); err != nil {
		t.Fatalf("WriteSubmission: %v", err)
	}

	want := "2\n0 0 1 1\n0 3 1 3\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestReadSubmission_ReadsWhatWasWritten(t *testing.T) {
	slices := buildLabelsTestResult().Slices
	var buf bytes.Buffer
	if err := WriteSubmission(&buf, slices, false); err != nil {
		t.Fatal(err)
	}

	rects, err := ReadSubmission(&buf)
	if err != nil {
		t.Fatalf("ReadSubmission: %v", err)
	}
	want := []model.Rect{slices[0].Rect, slices[1].Rect, slices[2].Rect}
	if !reflect.DeepEqual(rects, want) {
		t.Errorf("got %v, want %v", rects, want)
	}
}

func TestReadSubmission_SwappedCornersAndBlankLines(t *testing.T) {
	rects, err := ReadSubmission(strings.NewReader("\n1\n\n2 4 0 1\n"))
	if err != nil {
		t.Fatalf("ReadSubmission: %v", err)
	}
	want := model.Rect{Row: 0, Col: 1, Width: 4, Height: 3}
	if len(rects) != 1 || rects[0] != want {
		t.Errorf("got %v, want [%v]", rects, want)
	}
}

func TestReadSubmission_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad count", "x\n"},
		{"negative count", "-1\n"},
		{"count line with coordinates", "1 0 0 0\n"},
		{"short line", "1\n0 0 1\n"},
		{"bad coordinate", "1\n0 0 a 1\n"},
		{"missing slices", "2\n0 0 0 0\n"},
		{"trailing slices", "1\n0 0 0 0\n0 1 0 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSubmission(strings.NewReader(tt.input))
			if !errors.Is(err, ErrSubmission) {
				t.Errorf("expected ErrSubmission, got %v", err)
			}
		})
	}
}
