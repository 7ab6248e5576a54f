package recoengine

import (
	"context"
	"fmt"

	"github.com/andrisetiawan/squadhub/internal/domain/recommendation"
)

// StaticProvider produces fixed per-kind recommendations without calling the
// engine. It backs local development and deployments where the engine is not
// configured, so the bulk assignment pipeline still works end to end.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) GenerateForTeam(_ context.Context, teamID string, kind recommendation.Kind) (recommendation.Payload, error) {
	payload := recommendation.Payload{Kind: kind}

	switch kind {
	case recommendation.KindFull:
		payload.Summary = fmt.Sprintf("Balanced training block covering all areas for team %s.", teamID)
		payload.Physical = "Three conditioning sessions per week: interval runs, core circuits, mobility work."
		payload.Technical = "Daily first-touch and passing drills in small groups."
		payload.Tactical = "Weekly shape work on pressing triggers and defensive transitions."
		payload.Mental = "Short visualization routine before each session."
	case recommendation.KindPhysicalOnly:
		payload.Physical = "Progressive overload program: two strength sessions and two aerobic sessions per week."
		payload.Summary = fmt.Sprintf("Conditioning focus for team %s.", teamID)
	case recommendation.KindTeamTactical:
		payload.Tactical = "Positional rondos, pattern play into wide areas, and set-piece rehearsal."
		payload.Summary = fmt.Sprintf("Tactical focus for team %s.", teamID)
	case recommendation.KindAdvanced:
		payload.Analysis = fmt.Sprintf("Video review of the last three matches for team %s with individual clips per player.", teamID)
		payload.Summary = "Follow-up drills derived from the review findings."
		payload.Technical = "Targeted technique corrections identified in the analysis."
	default:
		return recommendation.Payload{}, fmt.Errorf("%w: %q", recommendation.ErrUnknownKind, kind)
	}

	return payload, nil
}
