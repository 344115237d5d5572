package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bazaarchat-be/internal/dto"
	"bazaarchat-be/pkg/events"
	pktNats "bazaarchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process transcript bus and forwards
// each turn to the durable NATS stream.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TranscriptTurnMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal transcript message: %v", err)
		msg.Ack() // malformed, retrying will not help
		return
	}

	if cs.eventPublisher == nil {
		// No NATS configured; transcripts live only in session memory.
		msg.Ack()
		return
	}

	event := events.BaseEvent{
		Type: events.TypeChatTurn,
		Data: map[string]interface{}{
			"session_id": payload.SessionId,
			"role":       payload.Role,
			"content":    payload.Content,
			"intent":     payload.Intent,
			"at":         payload.At,
		},
		OccurredAt: time.Now(),
	}

	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		log.Printf("[ERROR] Failed to forward chat turn for session %s: %v", payload.SessionId, err)
		msg.Nack() // transient NATS failure, retry
		return
	}

	msg.Ack()
}
