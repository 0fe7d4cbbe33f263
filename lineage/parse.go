package lineage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// reInfo matches the TYPE:NUMBER segment of a leaf or trailing branch info.
var reInfo = regexp.MustCompile(`^([A-Z]):(\d+(?:\.\d*)?(?:e-?\d+)?)$`)

// ParseError reports notation that does not match the lineage grammar.
// No partial forest is returned alongside it.
type ParseError struct {
	Tree     int    // index of the offending tree within the forest (0-based)
	Fragment string // substring that failed to parse
	Reason   string
	Err      error // underlying numeric error, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lineage: tree %d: %s: %q", e.Tree, e.Reason, e.Fragment)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseForest parses a semicolon-delimited forest. A single trailing ';' is
// allowed; any other empty segment is an error.
func ParseForest(text string) (Forest, error) {
	segments := strings.Split(strings.TrimSpace(text), ";")
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		return nil, &ParseError{Fragment: text, Reason: "empty forest"}
	}

	forest := make(Forest, 0, len(segments))
	for i, seg := range segments {
		if seg == "" {
			return nil, &ParseError{Tree: i, Fragment: seg, Reason: "empty tree"}
		}
		root, err := parseTree(seg, 0.0)
		if err != nil {
			err.Tree = i
			return nil, err
		}
		forest = append(forest, root)
	}
	return forest, nil
}

// ParseTree parses a single tree rooted at time zero.
func ParseTree(text string) (*Node, error) {
	root, err := parseTree(text, 0.0)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// parseTree recursively descends one tree. Children's offsets are added to
// the parent's absolute time, so event times never decrease down the tree.
func parseTree(s string, base float64) (*Node, *ParseError) {
	if !strings.ContainsAny(s, "()") {
		typ, dt, err := parseInfo(s)
		if err != nil {
			return nil, err
		}
		return &Node{Type: typ, EventTime: base + dt, Offset: dt}, nil
	}

	if s[0] != '(' {
		return nil, &ParseError{Fragment: s, Reason: "branch must start with '('"}
	}
	end := strings.LastIndexByte(s, ')')
	if end < 0 {
		return nil, &ParseError{Fragment: s, Reason: "unbalanced parentheses"}
	}
	body, info := s[1:end], s[end+1:]

	typ, dt, err := parseInfo(info)
	if err != nil {
		return nil, err
	}
	split, err := splitTopLevel(body)
	if err != nil {
		return nil, err
	}

	node := &Node{Type: typ, EventTime: base + dt, Offset: dt}
	if node.Left, err = parseTree(body[:split], node.EventTime); err != nil {
		return nil, err
	}
	if node.Right, err = parseTree(body[split+1:], node.EventTime); err != nil {
		return nil, err
	}
	return node, nil
}

// splitTopLevel returns the index of the first comma not nested in parentheses.
func splitTopLevel(body string) (int, *ParseError) {
	depth := 0
	split := -1
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return 0, &ParseError{Fragment: body, Reason: "unbalanced parentheses"}
			}
		case ',':
			if depth == 0 && split < 0 {
				split = i
			}
		}
	}
	if depth != 0 {
		return 0, &ParseError{Fragment: body, Reason: "unbalanced parentheses"}
	}
	if split < 0 {
		return 0, &ParseError{Fragment: body, Reason: "missing top-level comma"}
	}
	return split, nil
}

// parseInfo parses a TYPE:NUMBER segment into a type tag and time offset.
func parseInfo(s string) (int, float64, *ParseError) {
	m := reInfo.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, &ParseError{Fragment: s, Reason: "expected TYPE:NUMBER"}
	}
	dt, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, &ParseError{Fragment: s, Reason: "bad number", Err: err}
	}
	return int(m[1][0] - 'A'), dt, nil
}
