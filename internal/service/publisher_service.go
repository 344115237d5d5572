package service

import (
	"context"
	"encoding/json"
	"time"

	"bazaarchat-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishTurn(ctx context.Context, sessionId, role, content, intent string) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

// PublishTurn hands a chat turn to the in-process bus. The chat path
// never blocks on transcript durability; the consumer forwards to NATS
// asynchronously.
func (s *publisherService) PublishTurn(ctx context.Context, sessionId, role, content, intent string) error {
	payload := dto.TranscriptTurnMessage{
		SessionId: sessionId,
		Role:      role,
		Content:   content,
		Intent:    intent,
		At:        time.Now().Format(time.RFC3339),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return s.pubSub.Publish(s.topicName, msg)
}
