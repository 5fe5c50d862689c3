package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/reviewlens/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(state model.ViewState, notices []model.Notification) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, state, notices)
	w.writeSummary(md, state)
	w.writeNotifications(md, notices)
	w.writeHistory(md, state)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, state model.ViewState, notices []model.Notification) {
	md.H1("Review Analysis Report")
	md.PlainText("")

	latest := state.LatestURL()
	if latest == "" {
		latest = "-"
	} else {
		// GFM splits table cells on "|" even inside code spans.
		latest = strings.ReplaceAll(codeSpan(latest), "|", `\|`)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Latest URL", latest},
			{"Analyzed URLs", strconv.Itoa(len(state.History))},
			{"Notifications", strconv.Itoa(len(notices))},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, state model.ViewState) {
	md.H2("Summary")
	md.PlainText("")
	if state.ResultsVisible && state.Summary != "" {
		md.PlainText(state.Summary)
	} else {
		md.PlainText("No summary available.")
	}
	md.PlainText("")
}

// writeNotifications writes one alert per notice; the alert type follows
// the notice kind.
func (w *MarkdownWriter) writeNotifications(md *markdown.Markdown, notices []model.Notification) {
	if len(notices) == 0 {
		return
	}

	md.H2("Notifications")
	md.PlainText("")
	for _, n := range notices {
		switch n.Kind {
		case model.NotificationValidation:
			md.Warningf("%s", n.Message)
		case model.NotificationApplication:
			md.Importantf("%s", n.Message)
		default:
			md.Cautionf("%s", n.Message)
		}
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeHistory(md *markdown.Markdown, state model.ViewState) {
	md.H2("History")
	md.PlainText("")
	if len(state.History) == 0 {
		md.PlainText("No URLs analyzed.")
		md.PlainText("")
		return
	}
	items := make([]string, len(state.History))
	for i, url := range state.History {
		items[i] = codeSpan(url)
	}
	md.BulletList(items...)
	md.PlainText("")
}

// codeSpan wraps s in an inline code span so URL characters such as "*"
// and "_" render literally. The fence is one backtick longer than the
// longest backtick run in s.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if longest > 0 {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [reviewlens](https://github.com/nao1215/reviewlens)*")
}
