package service

import (
	"context"
	"testing"
	"time"

	"nex-terminal-be/pkg/events"
	"nex-terminal-be/pkg/kvstore"
	"nex-terminal-be/pkg/llm"
	"nex-terminal-be/pkg/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnFlowsFromPublisherToConversation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	store := kvstore.NewMemoryStore()
	conv := memory.NewConversation(store)

	consumer := NewMemoryConsumerService(pubSub, events.TopicChatTurns, conv, nopLogger{})
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewTurnPublisherService(events.TopicChatTurns, pubSub)
	sess := metableSession()

	require.NoError(t, publisher.PublishTurn(&events.ChatTurnRecorded{
		SessionID:  sess.ID,
		Role:       llm.RoleUser,
		Content:    "oi",
		Mode:       "normal",
		OccurredAt: time.Now(),
	}))

	turns := waitForTurns(t, conv, sess.ID, 1)
	assert.Equal(t, llm.RoleUser, turns[0].Role)
	assert.Equal(t, "oi", turns[0].Content)
	assert.Equal(t, "normal", turns[0].Mode)
	assert.NotZero(t, turns[0].Timestamp)
}

func TestConsumerSkipsCorruptPayload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	store := kvstore.NewMemoryStore()
	conv := memory.NewConversation(store)

	consumer := NewMemoryConsumerService(pubSub, events.TopicChatTurns, conv, nopLogger{})
	require.NoError(t, consumer.Consume(ctx))

	sess := metableSession()

	// A corrupt message is acked and dropped, not retried.
	require.NoError(t, pubSub.Publish(events.TopicChatTurns,
		message.NewMessage(watermill.NewUUID(), []byte("{not json"))))

	publisher := NewTurnPublisherService(events.TopicChatTurns, pubSub)
	require.NoError(t, publisher.PublishTurn(&events.ChatTurnRecorded{
		SessionID:  sess.ID,
		Role:       llm.RoleAssistant,
		Content:    "olá!",
		Mode:       "normal",
		OccurredAt: time.Now(),
	}))

	turns := waitForTurns(t, conv, sess.ID, 1)
	assert.Equal(t, "olá!", turns[0].Content)
}

func waitForTurns(t *testing.T, conv *memory.Conversation, sessionID string, want int) []memory.Turn {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		turns, err := conv.History(context.Background(), sessionID)
		require.NoError(t, err)
		if len(turns) >= want {
			return turns
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d turns for session %s before deadline", want, sessionID)
	return nil
}
