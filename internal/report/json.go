package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/reviewlens/internal/model"
)

// JSONWriter outputs reports as a single JSON document.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Document is the JSON report shape.
type Document struct {
	// View is the final page state.
	View model.ViewState `json:"view"`

	// Notifications lists every notice raised during the run, in order.
	Notifications []model.Notification `json:"notifications"`
}

// Write implements Writer.
func (w *JSONWriter) Write(state model.ViewState, notices []model.Notification) (int, error) {
	if state.History == nil {
		state.History = []string{}
	}
	if notices == nil {
		notices = []model.Notification{}
	}

	doc := Document{View: state, Notifications: notices}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(doc, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
