package recommendation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the four fixed payload shapes the recommendation
// service produces.
type Kind string

const (
	KindFull         Kind = "FULL_RECOMMENDATION"
	KindPhysicalOnly Kind = "PHYSICAL_ONLY"
	KindTeamTactical Kind = "TEAM_TACTICAL"
	KindAdvanced     Kind = "ADVANCED_ANALYSIS"
)

var ErrUnknownKind = errors.New("unknown recommendation kind")

var allKinds = map[Kind]struct{}{
	KindFull:         {},
	KindPhysicalOnly: {},
	KindTeamTactical: {},
	KindAdvanced:     {},
}

func ParseKind(v string) (Kind, error) {
	kind := Kind(strings.ToUpper(strings.TrimSpace(v)))
	if _, ok := allKinds[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, v)
	}

	return kind, nil
}

// Payload is an opaque text-bearing recommendation. The training plan
// machine only maps it into a plan title/description; it never interprets
// the sections beyond picking the ones its template needs.
type Payload struct {
	Kind      Kind
	Summary   string
	Physical  string
	Technical string
	Tactical  string
	Mental    string
	Analysis  string
}

func (p Payload) Validate() error {
	if _, ok := allKinds[p.Kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}

	switch p.Kind {
	case KindFull:
		if strings.TrimSpace(p.Summary) == "" {
			return fmt.Errorf("full recommendation requires a summary")
		}
	case KindPhysicalOnly:
		if strings.TrimSpace(p.Physical) == "" {
			return fmt.Errorf("physical recommendation requires a physical section")
		}
	case KindTeamTactical:
		if strings.TrimSpace(p.Tactical) == "" {
			return fmt.Errorf("team tactical recommendation requires a tactical section")
		}
	case KindAdvanced:
		if strings.TrimSpace(p.Analysis) == "" {
			return fmt.Errorf("advanced analysis recommendation requires an analysis section")
		}
	}

	return nil
}

// PlanContent maps a payload into a plan title and description using the
// fixed template for its kind. subjectName is the player or team the
// recommendation was generated for. Pure data transformation; no side
// effects.
func PlanContent(p Payload, subjectName string) (string, string, error) {
	if err := p.Validate(); err != nil {
		return "", "", err
	}

	subjectName = strings.TrimSpace(subjectName)
	if subjectName == "" {
		subjectName = "unnamed subject"
	}

	switch p.Kind {
	case KindFull:
		return fmt.Sprintf("Recommended training program for %s", subjectName),
			joinSections(
				section("Summary", p.Summary),
				section("Physical", p.Physical),
				section("Technical", p.Technical),
				section("Tactical", p.Tactical),
				section("Mental", p.Mental),
			), nil
	case KindPhysicalOnly:
		return fmt.Sprintf("Physical conditioning program for %s", subjectName),
			joinSections(
				section("Physical", p.Physical),
				section("Notes", p.Summary),
			), nil
	case KindTeamTactical:
		return fmt.Sprintf("Tactical training program for %s", subjectName),
			joinSections(
				section("Tactical", p.Tactical),
				section("Summary", p.Summary),
			), nil
	case KindAdvanced:
		return fmt.Sprintf("Advanced analysis program for %s", subjectName),
			joinSections(
				section("Analysis", p.Analysis),
				section("Summary", p.Summary),
				section("Technical", p.Technical),
			), nil
	}

	return "", "", fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
}

func section(label, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	return label + ":\n" + body
}

func joinSections(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}

	return strings.Join(out, "\n\n")
}
