package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/nao1215/reviewlens/internal/analyze"
	"github.com/nao1215/reviewlens/internal/model"
	"github.com/nao1215/reviewlens/internal/notify"
)

// Elements is the set of page element operations the controller needs.
// *ui.View implements it.
type Elements interface {
	ShowLoader()
	HideLoader()
	ShowResults()
	HideResults()
	SetSummary(text string)
	PrependHistory(url string)
}

// Analyzer requests an analysis of a product URL.
// *analyze.Client implements it. Implementations report endpoint errors as
// *analyze.APIError; every other error is treated as a transport failure.
type Analyzer interface {
	Analyze(ctx context.Context, productURL string) (*model.Result, error)
}

// Controller wires one page's elements to an analyzer and a notifier.
// A Controller is safe for concurrent use.
type Controller struct {
	elements Elements
	analyzer Analyzer
	notifier notify.Notifier
	messages notify.Messages

	// logger receives the diagnostic details of transport failures.
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMessages sets the notification wording.
func WithMessages(m notify.Messages) Option {
	return func(c *Controller) {
		c.messages = m
	}
}

// New creates a Controller. Notices default to English and the logger to
// slog.Default().
func New(elements Elements, analyzer Analyzer, notifier notify.Notifier, opts ...Option) *Controller {
	c := &Controller{
		elements: elements,
		analyzer: analyzer,
		notifier: notifier,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Submit runs one analysis for the URL input and reports which path it took.
func (c *Controller) Submit(ctx context.Context, input string) model.Outcome {
	productURL := trimInput(input)
	if productURL == "" {
		c.notify(ctx, model.NotificationValidation, c.messages.EmptyURL())
		return model.OutcomeValidationError
	}

	c.elements.ShowLoader()
	c.elements.HideResults()
	defer c.elements.HideLoader()

	result, err := c.analyzer.Analyze(ctx, productURL)
	if err == nil && result == nil {
		err = fmt.Errorf("%w: analyzer returned no result", analyze.ErrMalformedResponse)
	}
	if err != nil {
		if apiErr, ok := analyze.AsAPIError(err); ok {
			c.logger.Debug("analyze endpoint reported an error",
				"url", productURL,
				"status", apiErr.StatusCode,
			)
			c.notify(ctx, model.NotificationApplication, c.messages.ApplicationError(apiErr.Message))
			return model.OutcomeApplicationError
		}

		attrs := []any{"url", productURL, "error", err}
		if !analyze.IsTransportError(err) {
			// Not produced by the endpoint client, e.g. a custom Analyzer.
			attrs = append(attrs, "unclassified", true)
		}
		c.logger.Error("an error occurred during the analysis", attrs...)
		c.notify(ctx, model.NotificationTransport, c.messages.TransportError())
		return model.OutcomeTransportError
	}

	c.elements.SetSummary(result.Summary)
	c.elements.ShowResults()
	c.RecordHistory(productURL)

	c.logger.Debug("analysis completed", "url", productURL)
	return model.OutcomeSuccess
}

// RecordHistory inserts url at the top of the history list.
func (c *Controller) RecordHistory(url string) {
	c.elements.PrependHistory(url)
}

// notify delivers a notice if a notifier is configured.
func (c *Controller) notify(ctx context.Context, kind model.NotificationKind, msg string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, model.Notification{Kind: kind, Message: msg})
}

// trimInput strips leading and trailing whitespace with the same set
// String.prototype.trim uses: Unicode White_Space without U+0085, plus the
// byte order mark.
func trimInput(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		if r == '\uFEFF' {
			return true
		}
		return r != '\u0085' && unicode.IsSpace(r)
	})
}
