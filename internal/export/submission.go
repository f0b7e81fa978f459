package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/slicecut/internal/model"
)

// ErrSubmission is returned when a submission file cannot be parsed.
var ErrSubmission = errors.New("malformed submission")

// WriteSubmission writes slices in the contest answer format: the slice
// count on the first line, then "r1 c1 r2 c2" per slice with inclusive
// corner coordinates.
func WriteSubmission(w io.Writer, slices []model.Slice, validOnly bool) error {
	out := make([]model.Slice, 0, len(slices))
	for _, s := range slices {
		if validOnly && !s.Valid {
			continue
		}
		out = append(out, s)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(out))
	for _, s := range out {
		fmt.Fprintf(bw, "%d %d %d %d\n", s.Rect.Row, s.Rect.Col, s.Rect.LastRow(), s.Rect.LastCol())
	}
	return bw.Flush()
}

// ReadSubmission parses the contest answer format back into rectangles.
// Corners may be given in either order.
func ReadSubmission(r io.Reader) ([]model.Rect, error) {
	scanner := bufio.NewScanner(r)
	line := 0

	next := func() ([]string, bool) {
		for scanner.Scan() {
			line++
			fields := strings.Fields(scanner.Text())
			if len(fields) > 0 {
				return fields, true
			}
		}
		return nil, false
	}

	header, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSubmission, err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrSubmission)
	}
	if len(header) != 1 {
		return nil, fmt.Errorf("%w: line %d: expected slice count", ErrSubmission, line)
	}
	count, err := strconv.Atoi(header[0])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: line %d: invalid slice count %q", ErrSubmission, line, header[0])
	}

	rects := make([]model.Rect, 0, count)
	for len(rects) < count {
		fields, ok := next()
		if !ok {
			break
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: line %d: expected 4 coordinates, got %d", ErrSubmission, line, len(fields))
		}
		var v [4]int
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid coordinate %q", ErrSubmission, line, f)
			}
			v[i] = n
		}
		r1, r2 := min(v[0], v[2]), max(v[0], v[2])
		c1, c2 := min(v[1], v[3]), max(v[1], v[3])
		rects = append(rects, model.Rect{Row: r1, Col: c1, Width: c2 - c1 + 1, Height: r2 - r1 + 1})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmission, err)
	}
	if len(rects) != count {
		return nil, fmt.Errorf("%w: header announces %d slices, found %d", ErrSubmission, count, len(rects))
	}
	if extra, ok := next(); ok {
		return nil, fmt.Errorf("%w: line %d: unexpected data %q after %d slices", ErrSubmission, line, strings.Join(extra, " "), count)
	}
	return rects, nil
}
