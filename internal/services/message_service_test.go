package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/storage"
)

type recordedFrame struct {
	userID    string
	frameType string
	payload   any
}

// recordingPusher captures pushed frames synchronously.
type recordingPusher struct {
	frames []recordedFrame
}

func (p *recordingPusher) Push(userID string, frameType string, payload any) {
	p.frames = append(p.frames, recordedFrame{userID, frameType, payload})
}

func newMessageService(t *testing.T) (*MessageService, *recordingPusher, *storage.Store) {
	t.Helper()
	store := newTestStore(t)
	pusher := &recordingPusher{}
	svc := NewMessageService(store, pusher)
	svc.now = func() time.Time { return testNow }
	return svc, pusher, store
}

func TestSendMessage(t *testing.T) {
	svc, pusher, store := newMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, store)
	bob := seedUser(t, store)

	msg, err := svc.Send(ctx, alice, bob, "hello")
	require.NoError(t, err)
	require.Equal(t, alice, msg.SenderID)
	require.Equal(t, bob, msg.RecipientID)

	// The recipient's live connections get a push.
	require.Len(t, pusher.frames, 1)
	require.Equal(t, bob, pusher.frames[0].userID)
	require.Equal(t, "message", pusher.frames[0].frameType)

	// The sender's copy starts read, the recipient's unread.
	sent, err := store.ListConversation(ctx, alice, bob, 10)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.True(t, sent[0].Read)

	unread, err := svc.UnreadCount(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, 1, unread)
}

func TestSendMessageValidation(t *testing.T) {
	svc, _, store := newMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, store)
	bob := seedUser(t, store)

	_, err := svc.Send(ctx, alice, bob, "   ")
	require.ErrorIs(t, err, core.ErrBadRequest)

	_, err = svc.Send(ctx, alice, alice, "to myself")
	require.ErrorIs(t, err, core.ErrBadRequest)

	_, err = svc.Send(ctx, alice, "missing", "hello")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestConversationMarksRead(t *testing.T) {
	svc, _, store := newMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, store)
	bob := seedUser(t, store)

	_, err := svc.Send(ctx, alice, bob, "first")
	require.NoError(t, err)
	_, err = svc.Send(ctx, alice, bob, "second")
	require.NoError(t, err)

	messages, err := svc.Conversation(ctx, bob, alice, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	unread, err := svc.UnreadCount(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, 0, unread)
}

func TestConversationScopedToPeer(t *testing.T) {
	svc, _, store := newMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, store)
	bob := seedUser(t, store)
	carol := seedUser(t, store)

	_, err := svc.Send(ctx, alice, bob, "for bob")
	require.NoError(t, err)
	_, err = svc.Send(ctx, alice, carol, "for carol")
	require.NoError(t, err)

	withBob, err := svc.Conversation(ctx, alice, bob, 0)
	require.NoError(t, err)
	require.Len(t, withBob, 1)
	require.Equal(t, "for bob", withBob[0].Body)

	empty, err := svc.Conversation(ctx, bob, carol, 0)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}
