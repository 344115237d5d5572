package memory

import (
	"fmt"
	"testing"
	"time"

	"bazaarchat-be/pkg/store"
)

func newTestRepo(maxHistory int) *SessionRepository {
	return NewSessionRepositoryWithConfig(60*time.Millisecond, time.Hour, maxHistory)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	repo := NewSessionRepository()

	first := repo.GetOrCreate("sess-1")
	first.LastIntent = "product"
	repo.Save(first)

	second := repo.GetOrCreate("sess-1")
	if second.LastIntent != "product" {
		t.Fatal("second GetOrCreate must return the existing session")
	}
}

func TestGetMissingSession(t *testing.T) {
	repo := NewSessionRepository()

	if sess, found := repo.Get("nope"); found || sess != nil {
		t.Fatalf("expected miss, got %+v", sess)
	}
}

func TestAppendTurnCapsHistory(t *testing.T) {
	repo := newTestRepo(5)
	repo.GetOrCreate("sess-1")

	for i := 0; i < 12; i++ {
		repo.AppendTurn("sess-1", store.RoleUser, fmt.Sprintf("turn %d", i))
	}

	sess, found := repo.Get("sess-1")
	if !found {
		t.Fatal("session vanished")
	}
	if len(sess.History) != 5 {
		t.Fatalf("expected history capped at 5, got %d", len(sess.History))
	}
	if sess.History[0].Content != "turn 7" {
		t.Fatalf("oldest turns should be evicted first, got %q", sess.History[0].Content)
	}
	if sess.History[4].Content != "turn 11" {
		t.Fatalf("latest turn should be last, got %q", sess.History[4].Content)
	}
}

func TestSetIntentRecordsTimestamp(t *testing.T) {
	repo := NewSessionRepository()
	repo.GetOrCreate("sess-1")

	repo.SetIntent("sess-1", "product")

	sess, _ := repo.Get("sess-1")
	if sess.LastIntent != "product" {
		t.Fatalf("expected product intent, got %q", sess.LastIntent)
	}
	if sess.LastIntentAt.IsZero() {
		t.Fatal("intent timestamp should be set")
	}
}

func TestSetAuthenticatedCreatesWhenMissing(t *testing.T) {
	repo := NewSessionRepository()

	repo.SetAuthenticated("sess-1", true)

	sess, found := repo.Get("sess-1")
	if !found {
		t.Fatal("expected session to be created")
	}
	if !sess.Authenticated {
		t.Fatal("expected authenticated flag")
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	repo := newTestRepo(DefaultMaxHistory)
	repo.GetOrCreate("sess-1")

	time.Sleep(90 * time.Millisecond)
	repo.Sweep()

	if _, found := repo.Get("sess-1"); found {
		t.Fatal("expired session should be gone after a sweep")
	}
}

func TestAppendTurnRefreshesTTL(t *testing.T) {
	repo := newTestRepo(DefaultMaxHistory)
	repo.GetOrCreate("sess-1")

	time.Sleep(40 * time.Millisecond)
	repo.AppendTurn("sess-1", store.RoleUser, "still here")
	time.Sleep(40 * time.Millisecond)
	repo.Sweep()

	if _, found := repo.Get("sess-1"); !found {
		t.Fatal("activity should have refreshed the TTL")
	}
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository()
	repo.GetOrCreate("sess-1")
	repo.Delete("sess-1")

	if _, found := repo.Get("sess-1"); found {
		t.Fatal("deleted session should not resolve")
	}
}
