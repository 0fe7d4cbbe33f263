package trace

import (
	"bufio"
	"io"
	"strconv"
)

// DefaultPrecision is the number of significant digits written per value.
const DefaultPrecision = 6

// Writer renders frames in the line format consumed by renderers:
//
//	<time> T(x, y), T(x, y), ...
//
// A frame with no particles is written as the time alone.
type Writer struct {
	// Precision is the number of significant digits; -1 writes the shortest
	// representation that round-trips.
	Precision int

	bw  *bufio.Writer
	buf []byte
}

// NewWriter buffers output to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{Precision: DefaultPrecision, bw: bufio.NewWriter(w)}
}

// Record writes one line for the frame.
func (w *Writer) Record(f Frame) error {
	w.buf = AppendLine(w.buf[:0], f, w.Precision)
	w.buf = append(w.buf, '\n')
	_, err := w.bw.Write(w.buf)
	return err
}

// Flush writes any buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// AppendLine appends the frame's line, without a trailing newline, to dst.
func AppendLine(dst []byte, f Frame, precision int) []byte {
	dst = strconv.AppendFloat(dst, f.Time, 'g', precision, 64)
	for i, p := range f.Points {
		if i == 0 {
			dst = append(dst, ' ')
		} else {
			dst = append(dst, ',', ' ')
		}
		dst = append(dst, byte('A'+p.Type), '(')
		dst = strconv.AppendFloat(dst, p.X, 'g', precision, 64)
		dst = append(dst, ',', ' ')
		dst = strconv.AppendFloat(dst, p.Y, 'g', precision, 64)
		dst = append(dst, ')')
	}
	return dst
}

// FormatLine renders one frame as a line without a trailing newline.
func FormatLine(f Frame, precision int) string {
	return string(AppendLine(nil, f, precision))
}
