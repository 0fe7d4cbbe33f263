package lineage

import (
	"strconv"
	"strings"
)

// String re-emits the node in lineage notation. Times are written as the
// parsed offsets, so parsing the result reproduces identical event times.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	if n.Left != nil || n.Right != nil {
		b.WriteByte('(')
		writeChild(b, n.Left)
		b.WriteByte(',')
		writeChild(b, n.Right)
		b.WriteByte(')')
	}
	b.WriteByte(n.TypeLetter())
	b.WriteByte(':')
	// 'f' never produces an exponent with '+', which the grammar rejects.
	b.WriteString(strconv.FormatFloat(n.Offset, 'f', -1, 64))
}

// writeChild tolerates a missing child so corrupted trees can still be printed
// in diagnostics; the output will not re-parse.
func writeChild(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	n.format(b)
}

// Format re-emits a forest, one tree per ';'-terminated segment.
func Format(f Forest) string {
	var b strings.Builder
	for _, root := range f {
		root.format(&b)
		b.WriteByte(';')
	}
	return b.String()
}
