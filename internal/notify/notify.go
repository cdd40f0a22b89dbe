// Package notify delivers reminder messages to the user.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Notifier delivers a short message with a title.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, title, body string) error

func (f Func) Notify(ctx context.Context, title, body string) error {
	return f(ctx, title, body)
}

// Terminal prints the message and rings the bell when the output is a terminal.
type Terminal struct {
	w    io.Writer
	bell bool
}

// NewTerminal writes to w. The bell is only rung when w is a TTY.
func NewTerminal(w io.Writer) *Terminal {
	bell := false
	if f, ok := w.(*os.File); ok {
		bell = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{w: w, bell: bell}
}

func (t *Terminal) Notify(_ context.Context, title, body string) error {
	if t.bell {
		if _, err := io.WriteString(t.w, "\a"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(t.w, "🔔 %s\n", title); err != nil {
		return err
	}
	if body != "" {
		if _, err := fmt.Fprintln(t.w, body); err != nil {
			return err
		}
	}
	return nil
}

// Multi sends to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
