// Package report renders the outcome of an analyze run.
//
// A report is the final view state (summary, history) plus the
// notifications raised along the way. Writers:
//   - TextWriter: plain text for the terminal
//   - JSONWriter: a single JSON document for scripts
//   - MarkdownWriter: GitHub Flavored Markdown with alerts
//
// Writers implement the Writer interface and can be combined with
// MultiWriter.
package report
