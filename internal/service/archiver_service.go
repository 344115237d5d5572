package service

import (
	"context"
	"sync/atomic"

	"bazaarchat-be/internal/pkg/logger"
	"bazaarchat-be/pkg/events"
	pktNats "bazaarchat-be/pkg/nats"
)

const archiverDurableName = "transcript-archiver"

// IArchiverService drains the durable chat stream into the structured
// log, so transcripts end up in the same rotated files as the rest of
// the system and survive independently of the bus retention window.
type IArchiverService interface {
	Start() error
	Archived() uint64
}

type archiverService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
	archived   atomic.Uint64
}

func NewArchiverService(subscriber *pktNats.Subscriber, log logger.ILogger) IArchiverService {
	return &archiverService{
		subscriber: subscriber,
		logger:     log,
	}
}

// Start attaches a durable consumer to the chat-turn subject. The
// durable name keeps the cursor across restarts, so no turn is
// archived twice or skipped.
func (s *archiverService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("archiver", "no subscriber configured, transcript archival disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("chat."+events.TypeChatTurn, archiverDurableName, s.handleEvent)
}

func (s *archiverService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	if payload == nil || payload["session_id"] == nil {
		// A turn without a session can never archive; skip it rather
		// than poison the consumer with redeliveries.
		s.logger.Warn("archiver", "skipping malformed transcript event", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}

	s.archived.Add(1)
	s.logger.Info("archiver", "transcript turn archived", map[string]interface{}{
		"session_id": payload["session_id"],
		"role":       payload["role"],
		"intent":     payload["intent"],
		"content":    payload["content"],
	})
	return nil
}

// Archived reports how many turns this instance has written out.
func (s *archiverService) Archived() uint64 {
	return s.archived.Load()
}
