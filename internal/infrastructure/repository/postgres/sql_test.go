package postgres

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches pq error code", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505 error")
		}
	})

	t.Run("matches wrapped pq error", func(t *testing.T) {
		err := fmt.Errorf("create join request: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for wrapped 23505 error")
		}
	})

	t.Run("matches constraint message text", func(t *testing.T) {
		err := fakeErr(`pq: duplicate key value violates unique constraint "join_requests_player_team_status_key"`)
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for duplicate constraint message")
		}
	})

	t.Run("ignores unrelated errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("pq: relation teams does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
		if isUniqueViolation(nil) {
			t.Fatalf("expected false for nil")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
