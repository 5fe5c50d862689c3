package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nao1215/reviewlens/internal/model"
)

// Notifier shows a blocking notification to the user.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}

// Writer prints notifications as "[kind] message" lines.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter returns a Writer printing to out (typically os.Stderr).
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify implements Notifier.
func (w *Writer) Notify(_ context.Context, n model.Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, n.String())
}

// Recorder queues notifications until they are drained.
type Recorder struct {
	mu      sync.Mutex
	pending []model.Notification
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, n)
}

// Drain returns the queued notifications in arrival order and clears the queue.
func (r *Recorder) Drain() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	if out == nil {
		out = []model.Notification{}
	}
	return out
}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, n model.Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}
