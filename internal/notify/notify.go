// Package notify delivers account and package emails.
//
// Sends triggered by a state change go through Dispatcher.Go and never
// report back to the caller: a failed email is logged and counted, and the
// change that triggered it stands.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/swiftship/internal/metrics"
)

// Message is a rendered email.
type Message struct {
	Kind    string
	Subject string
	Body    string
}

// Sender delivers a message to one recipient.
type Sender interface {
	Send(ctx context.Context, to string, msg Message) error
}

// LogSender writes messages to the log instead of sending them. It is the
// default when no SMTP server is configured.
type LogSender struct{}

// Send implements Sender.
func (LogSender) Send(_ context.Context, to string, msg Message) error {
	slog.Info("email (not sent, no SMTP configured)", "to", to, "kind", msg.Kind, "subject", msg.Subject)
	return nil
}

// DefaultTimeout bounds a single send.
const DefaultTimeout = 15 * time.Second

// Dispatcher runs sends with a timeout and tracks background work.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps sender. A nil sender falls back to LogSender.
func NewDispatcher(sender Sender) *Dispatcher {
	if sender == nil {
		sender = LogSender{}
	}
	return &Dispatcher{sender: sender, timeout: DefaultTimeout}
}

// SetTimeout overrides the per-send timeout.
func (d *Dispatcher) SetTimeout(timeout time.Duration) {
	d.timeout = timeout
}

// Go sends msg in the background. Failures are logged and counted only.
func (d *Dispatcher) Go(to string, msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Send(context.Background(), to, msg)
	}()
}

// Send delivers msg synchronously and reports whether it succeeded.
func (d *Dispatcher) Send(ctx context.Context, to string, msg Message) bool {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.send(ctx, to, msg)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(msg.Kind, "error").Inc()
		slog.Error("failed to send notification", "kind", msg.Kind, "to", to, "error", err)
		return false
	}
	metrics.NotificationsSent.WithLabelValues(msg.Kind, "ok").Inc()
	return true
}

// send waits for the sender or the deadline, whichever comes first. net/smtp
// ignores contexts, so the sender runs on its own goroutine.
func (d *Dispatcher) send(ctx context.Context, to string, msg Message) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("sender panic: %v", r)
			}
		}()
		done <- d.sender.Send(ctx, to, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until all background sends have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
