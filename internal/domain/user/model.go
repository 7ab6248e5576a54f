package user

import "strings"

type Role string

const (
	RoleCoach  Role = "COACH"
	RolePlayer Role = "PLAYER"
	RoleAdmin  Role = "ADMIN"
)

// Principal is the authenticated actor as resolved by the identity service.
// CoachID/PlayerID carry the domain identity the account maps to; at most one
// of them is set for non-admin roles.
type Principal struct {
	UserID   string
	Email    string
	Role     Role
	CoachID  string
	PlayerID string
}

func (p Principal) IsCoach() bool {
	return p.Role == RoleCoach && strings.TrimSpace(p.CoachID) != ""
}

func (p Principal) IsPlayer() bool {
	return p.Role == RolePlayer && strings.TrimSpace(p.PlayerID) != ""
}

func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(v))) {
	case RoleCoach:
		return RoleCoach, true
	case RolePlayer:
		return RolePlayer, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
