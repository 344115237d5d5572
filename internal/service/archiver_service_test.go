package service

import (
	"context"
	"testing"
	"time"

	"bazaarchat-be/pkg/events"
)

type recordingLogger struct {
	nopLogger
	infos []map[string]interface{}
	warns []map[string]interface{}
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.infos = append(l.infos, details)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.warns = append(l.warns, details)
}

func turnEvent(data map[string]interface{}) events.Event {
	return events.BaseEvent{
		Type:       "chat." + events.TypeChatTurn,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func TestArchiverCountsTurns(t *testing.T) {
	logged := &recordingLogger{}
	s := &archiverService{logger: logged}

	err := s.handleEvent(context.Background(), turnEvent(map[string]interface{}{
		"session_id": "guest-1",
		"role":       "user",
		"content":    "red kurta",
		"intent":     "product",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Archived() != 1 {
		t.Fatalf("expected 1 archived turn, got %d", s.Archived())
	}
	if len(logged.infos) != 1 || logged.infos[0]["session_id"] != "guest-1" {
		t.Fatalf("turn should be written to the log, got %+v", logged.infos)
	}
}

func TestArchiverSkipsMalformedEvents(t *testing.T) {
	logged := &recordingLogger{}
	s := &archiverService{logger: logged}

	for _, data := range []map[string]interface{}{nil, {"role": "user"}} {
		if err := s.handleEvent(context.Background(), turnEvent(data)); err != nil {
			t.Fatalf("malformed events must not trigger redelivery, got %v", err)
		}
	}
	if s.Archived() != 0 {
		t.Fatalf("malformed events must not count as archived, got %d", s.Archived())
	}
	if len(logged.warns) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(logged.warns))
	}
}

func TestArchiverStartWithoutSubscriber(t *testing.T) {
	s := NewArchiverService(nil, &recordingLogger{})
	if err := s.Start(); err != nil {
		t.Fatalf("missing subscriber should disable archival, not fail: %v", err)
	}
}
