package recommendation

import (
	"errors"
	"strings"
	"testing"
)

func TestPlanContent_EveryKindProducesContent(t *testing.T) {
	payloads := []Payload{
		{Kind: KindFull, Summary: "season overview", Physical: "sprints", Tactical: "pressing"},
		{Kind: KindPhysicalOnly, Physical: "strength block"},
		{Kind: KindTeamTactical, Tactical: "high press drills"},
		{Kind: KindAdvanced, Analysis: "expected-goals breakdown"},
	}

	for _, payload := range payloads {
		title, description, err := PlanContent(payload, "North FC")
		if err != nil {
			t.Fatalf("plan content for kind %s: %v", payload.Kind, err)
		}
		if title == "" || description == "" {
			t.Fatalf("empty content for kind %s", payload.Kind)
		}
		if !strings.Contains(title, "North FC") {
			t.Fatalf("title %q does not mention subject", title)
		}
	}
}

func TestPlanContent_RejectsMissingRequiredSection(t *testing.T) {
	_, _, err := PlanContent(Payload{Kind: KindPhysicalOnly}, "Ayu")
	if err == nil {
		t.Fatal("expected error for empty physical section")
	}
}

func TestPlanContent_RejectsUnknownKind(t *testing.T) {
	_, _, err := PlanContent(Payload{Kind: "GUESSWORK"}, "Ayu")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" physical_only ")
	if err != nil {
		t.Fatalf("parse kind: %v", err)
	}
	if kind != KindPhysicalOnly {
		t.Fatalf("unexpected kind: %s", kind)
	}

	if _, err := ParseKind("nope"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}
