package report

import (
	"io"

	"github.com/nao1215/reviewlens/internal/model"
)

// Writer renders the final view of a run together with the notifications
// raised during it.
type Writer interface {
	// Write outputs the report and returns the number of bytes written.
	Write(state model.ViewState, notices []model.Notification) (int, error)
}

// MultiWriter writes the same report to several Writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to every Writer and stops on the first error.
func (m *MultiWriter) Write(state model.ViewState, notices []model.Notification) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(state, notices)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
