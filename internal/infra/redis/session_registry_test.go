package redis

import (
	"testing"
	"time"

	"course-quiz-service/internal/app"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestSessionRegistrySetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	registry := NewSessionRegistry(client, time.Minute)

	session, err := app.StartSession("u1", "set-1", sampleSet().Questions)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	registry.Put("k1", session)
	if !mr.Exists("attempt:session:k1") {
		t.Fatalf("expected redis liveness key to be set")
	}
	if got, ok := registry.Get("k1"); !ok || got != session {
		t.Fatalf("expected registered session back")
	}

	registry.Delete("k1")
	if mr.Exists("attempt:session:k1") {
		t.Fatalf("expected redis liveness key to be removed")
	}
	if _, ok := registry.Get("k1"); ok {
		t.Fatalf("expected session removed")
	}
}
