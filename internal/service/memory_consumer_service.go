package service

import (
	"context"
	"encoding/json"

	"nex-terminal-be/internal/pkg/logger"
	"nex-terminal-be/pkg/events"
	"nex-terminal-be/pkg/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IMemoryConsumerService runs the conversation memory worker.
type IMemoryConsumerService interface {
	Consume(ctx context.Context) error
}

type memoryConsumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	conversation *memory.Conversation
	log          logger.ILogger
}

func NewMemoryConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	conversation *memory.Conversation,
	log logger.ILogger,
) IMemoryConsumerService {
	return &memoryConsumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		conversation: conversation,
		log:          log,
	}
}

func (cs *memoryConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *memoryConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Memory is best effort: every message is acked, including failures,
	// to prevent redelivery loops for a log that tolerates gaps.
	defer msg.Ack()

	var event events.ChatTurnRecorded
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("memory", "failed to unmarshal turn event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	turn := memory.Turn{
		Role:      event.Role,
		Content:   event.Content,
		Mode:      event.Mode,
		Timestamp: event.OccurredAt.UnixMilli(),
	}

	if err := cs.conversation.Append(ctx, event.SessionID, turn); err != nil {
		cs.log.Warn("memory", "turn append dropped", map[string]interface{}{
			"session": event.SessionID,
			"error":   err.Error(),
		})
	}
}
