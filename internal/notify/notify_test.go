package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf)

	require.NoError(t, n.Notify(context.Background(), "You have tasks for today!", "1. Pay rent"))

	assert.Equal(t, "🔔 You have tasks for today!\n1. Pay rent\n", buf.String())
	assert.NotContains(t, buf.String(), "\a", "bell only rings on a terminal")
}

func TestMultiJoinsErrors(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	m := Multi{
		Func(func(_ context.Context, title, _ string) error {
			calls = append(calls, "first:"+title)
			return boom
		}),
		nil,
		Func(func(_ context.Context, title, _ string) error {
			calls = append(calls, "second:"+title)
			return nil
		}),
	}

	err := m.Notify(context.Background(), "hi", "")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first:hi", "second:hi"}, calls)
}
