package progress

import (
	"errors"
	"testing"
)

func TestClampPercentage(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-20, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{150, 100},
	}
	for _, tc := range cases {
		if got := ClampPercentage(tc.in); got != tc.want {
			t.Fatalf("clamp(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestActor_ExactlyOneRecorder(t *testing.T) {
	if err := PlayerActor("player-1").Validate(); err != nil {
		t.Fatalf("player actor: %v", err)
	}
	if err := CoachActor("coach-1").Validate(); err != nil {
		t.Fatalf("coach actor: %v", err)
	}

	if err := (Actor{}).Validate(); !errors.Is(err, ErrInvalidActor) {
		t.Fatalf("empty actor: expected ErrInvalidActor, got %v", err)
	}
	both := Actor{PlayerID: "player-1", CoachID: "coach-1"}
	if err := both.Validate(); !errors.Is(err, ErrInvalidActor) {
		t.Fatalf("double actor: expected ErrInvalidActor, got %v", err)
	}
}
