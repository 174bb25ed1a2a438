package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipients(t *testing.T) {
	r := NewRecipients(10, 0, 20, 10)
	require.Equal(t, Recipients{10, 20}, r)

	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(20))
	assert.False(t, r.Contains(30))
	assert.False(t, r.Contains(0))
}

func TestNewRecipientsKeepsGroupChatIDs(t *testing.T) {
	r := NewRecipients(-100123, 42)
	require.Equal(t, Recipients{-100123, 42}, r)
	assert.True(t, r.Contains(-100123))
}

func TestNewRecipientsAllDisabled(t *testing.T) {
	r := NewRecipients(0, 0)
	require.Empty(t, r)
	assert.False(t, r.Contains(0))
}

func TestBroadcastDeliversToAll(t *testing.T) {
	var got []int64
	n := New(func(_ context.Context, chatID int64, text string) error {
		require.Equal(t, "hello", text)
		got = append(got, chatID)
		return nil
	}, NewRecipients(1, 2))

	s := n.Broadcast(context.Background(), "hello")
	require.Equal(t, []int64{1, 2}, got)
	assert.Equal(t, 2, s.Attempted)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 0, s.Failed)
}

func TestBroadcastFailureDoesNotAbortOthers(t *testing.T) {
	boom := errors.New("chat not found")
	var got []int64
	n := New(func(_ context.Context, chatID int64, _ string) error {
		got = append(got, chatID)
		if chatID == 1 {
			return boom
		}
		return nil
	}, NewRecipients(1, 2))

	s := n.Broadcast(context.Background(), "hi")
	require.Equal(t, []int64{1, 2}, got, "second recipient must still be attempted")
	assert.Equal(t, 2, s.Attempted)
	assert.Equal(t, 1, s.Succeeded)
	assert.Equal(t, 1, s.Failed)

	require.Len(t, s.Results, 2)
	assert.ErrorIs(t, s.Results[0].Err, boom)
	assert.NoError(t, s.Results[1].Err)
}

func TestBroadcastEmptyRecipientSet(t *testing.T) {
	n := New(func(context.Context, int64, string) error {
		t.Fatal("send must not be called")
		return nil
	}, NewRecipients(0))

	s := n.Broadcast(context.Background(), "hi")
	assert.Zero(t, s.Attempted)
	assert.Empty(t, s.Results)
}
