package service

import (
	"encoding/json"

	"nex-terminal-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ITurnPublisherService hands chat turns to the memory worker.
type ITurnPublisherService interface {
	PublishTurn(event *events.ChatTurnRecorded) error
}

type turnPublisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewTurnPublisherService(topicName string, pubSub *gochannel.GoChannel) ITurnPublisherService {
	return &turnPublisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *turnPublisherService) PublishTurn(event *events.ChatTurnRecorded) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
