package joinrequest

import (
	"errors"
	"testing"
)

func TestTransition_FromPending(t *testing.T) {
	for _, to := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		got, err := Transition(StatusPending, to)
		if err != nil {
			t.Fatalf("PENDING -> %s: %v", to, err)
		}
		if got != to {
			t.Fatalf("unexpected status: %s", got)
		}
	}
}

func TestTransition_TerminalStatesAreFrozen(t *testing.T) {
	for _, from := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		if !from.Terminal() {
			t.Fatalf("%s should be terminal", from)
		}
		for _, to := range []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled} {
			if _, err := Transition(from, to); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	if _, err := Transition("SHIPPED", StatusApproved); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if Status("SHIPPED").Valid() {
		t.Fatal("unknown status reported as valid")
	}
}
