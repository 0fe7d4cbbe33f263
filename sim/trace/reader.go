package trace

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single frame line; large populations produce long lines.
const maxLineBytes = 64 << 20

var rePoint = regexp.MustCompile(`([A-Z])\(([^,()\s]+), ([^,()\s]+)\)`)

// ReadFrames parses the line format produced by Writer. Blank lines are skipped.
func ReadFrames(r io.Reader) ([]Frame, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var frames []Frame
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading frames: %w", err)
	}
	return frames, nil
}

// ParseLine parses a single frame line.
func ParseLine(line string) (Frame, error) {
	head, rest, _ := strings.Cut(line, " ")
	t, err := strconv.ParseFloat(head, 64)
	if err != nil {
		return Frame{}, fmt.Errorf("parsing time %q: %w", head, err)
	}
	f := Frame{Time: t}

	pos := 0
	for _, m := range rePoint.FindAllStringSubmatchIndex(rest, -1) {
		if m[0] != pos {
			return Frame{}, fmt.Errorf("unexpected text %q", rest[pos:m[0]])
		}
		x, err := strconv.ParseFloat(rest[m[4]:m[5]], 64)
		if err != nil {
			return Frame{}, fmt.Errorf("parsing x: %w", err)
		}
		y, err := strconv.ParseFloat(rest[m[6]:m[7]], 64)
		if err != nil {
			return Frame{}, fmt.Errorf("parsing y: %w", err)
		}
		f.Points = append(f.Points, Point{Type: int(rest[m[2]] - 'A'), X: x, Y: y})
		pos = m[1]
		if strings.HasPrefix(rest[pos:], ", ") {
			pos += 2
		}
	}
	if pos != len(rest) {
		return Frame{}, fmt.Errorf("unexpected text %q", rest[pos:])
	}
	return f, nil
}
