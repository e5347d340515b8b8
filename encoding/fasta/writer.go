package fasta

import (
	"bufio"
	"io"
)

// DefaultLineWidth is the number of bases per sequence line written by
// Writer when no width is given.
const DefaultLineWidth = 60

// Writer writes FASTA records, wrapping sequence lines at a fixed
// width. Writers buffer internally; call Flush when done.
type Writer struct {
	w     *bufio.Writer
	width int
}

// NewWriter returns a Writer that wraps sequences at width bases per
// line. A width <= 0 selects DefaultLineWidth.
func NewWriter(w io.Writer, width int) *Writer {
	if width <= 0 {
		width = DefaultLineWidth
	}
	return &Writer{w: bufio.NewWriter(w), width: width}
}

// Write writes one record. The description, if any, follows the name
// on the header line after a space.
func (w *Writer) Write(rec Record) error {
	if err := w.w.WriteByte('>'); err != nil {
		return err
	}
	if _, err := w.w.WriteString(rec.Name); err != nil {
		return err
	}
	if rec.Desc != "" {
		if err := w.w.WriteByte(' '); err != nil {
			return err
		}
		if _, err := w.w.WriteString(rec.Desc); err != nil {
			return err
		}
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	for seq := rec.Seq; len(seq) > 0; {
		n := w.width
		if n > len(seq) {
			n = len(seq)
		}
		if _, err := w.w.Write(seq[:n]); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
		seq = seq[n:]
	}
	return nil
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
