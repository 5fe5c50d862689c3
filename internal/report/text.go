package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/reviewlens/internal/model"
)

// TextWriter outputs a plain text report for terminal display.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *TextWriter) Write(state model.ViewState, notices []model.Notification) (int, error) {
	var sb strings.Builder

	w.writeSummary(&sb, state)
	w.writeNotifications(&sb, notices)
	w.writeHistory(&sb, state)

	return io.WriteString(w.output, sb.String())
}

func (w *TextWriter) writeSummary(sb *strings.Builder, state model.ViewState) {
	sb.WriteString("Summary\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	switch {
	case !state.AtRest():
		sb.WriteString("(analysis in progress)\n")
	case state.ResultsVisible && state.Summary != "":
		sb.WriteString(state.Summary)
		sb.WriteString("\n")
	default:
		sb.WriteString("(no summary)\n")
	}
	sb.WriteString("\n")
}

func (w *TextWriter) writeNotifications(sb *strings.Builder, notices []model.Notification) {
	if len(notices) == 0 {
		return
	}
	sb.WriteString("Notifications\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	for _, n := range notices {
		sb.WriteString(n.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func (w *TextWriter) writeHistory(sb *strings.Builder, state model.ViewState) {
	sb.WriteString(fmt.Sprintf("History (%d)\n", len(state.History)))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	for i, url := range state.History {
		sb.WriteString(fmt.Sprintf("%3d. %s\n", i+1, url))
	}
}
