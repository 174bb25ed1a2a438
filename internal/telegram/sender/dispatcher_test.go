package sender

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueExecutesJob(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 4, Workers: 1})
	defer d.Close()

	done := make(chan struct{})
	err := d.Enqueue(context.Background(), "send.text", func() error {
		close(done)
		return nil
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not executed")
	}
	assert.Zero(t, d.ErrorCount())
}

func TestEnqueueNilRun(t *testing.T) {
	d := NewDispatcher(Options{})
	defer d.Close()

	require.Error(t, d.Enqueue(context.Background(), "noop", nil))
}

func TestEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{})
	d.Close()

	err := d.Enqueue(context.Background(), "send.text", func() error { return nil })
	require.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueueFull(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})
	defer d.Close()

	var block sync.WaitGroup
	block.Add(1)

	// Occupy the single worker, then fill the queue.
	require.NoError(t, d.Enqueue(context.Background(), "block", func() error {
		block.Wait()
		return nil
	}))

	// The queue may drain the first job before we fill it; keep pushing until full.
	deadline := time.After(2 * time.Second)
	for {
		err := d.Enqueue(context.Background(), "fill", func() error {
			block.Wait()
			return nil
		})
		if errors.Is(err, ErrQueueFull) {
			break
		}
		require.NoError(t, err)
		select {
		case <-deadline:
			t.Fatal("queue never reported full")
		default:
		}
	}

	block.Done()
}

func TestFailedJobCounted(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})

	require.NoError(t, d.Enqueue(context.Background(), "send.text", func() error {
		return errors.New("telegram: bad request")
	}))
	d.Close() // drains the queue

	assert.Equal(t, uint64(1), d.ErrorCount())
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New("Post https://api.telegram.org/bot12345:AAaa_bb-cc/sendMessage: timeout")
	got := sanitizeErrorMessage(err)
	assert.NotContains(t, got, "12345:AAaa_bb-cc")
	assert.Contains(t, got, "bot<redacted>")
}
