package memory

import (
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
	"github.com/andrisetiawan/squadhub/internal/domain/coach"
	"github.com/andrisetiawan/squadhub/internal/domain/player"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
)

const (
	ClusterIDNorth = "cluster-north-jakarta"
	ClusterIDSouth = "cluster-south-jakarta"

	TeamIDGarudaU17   = "team-garuda-u17"
	TeamIDRajawaliU19 = "team-rajawali-u19"
	TeamIDHarimauU17  = "team-harimau-u17"

	CoachIDBima = "coach-bima"
	CoachIDSari = "coach-sari"

	PlayerIDEka   = "player-eka"
	PlayerIDDimas = "player-dimas"
	PlayerIDYoga  = "player-yoga"
	PlayerIDRafi  = "player-rafi"
	PlayerIDBayu  = "player-bayu"
)

var seedTime = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func SeedClusters() []cluster.Cluster {
	return []cluster.Cluster{
		{ID: ClusterIDNorth, Name: "North Jakarta Training Ground", Location: "Kelapa Gading", CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: ClusterIDSouth, Name: "South Jakarta Training Ground", Location: "Lebak Bulus", CreatedAt: seedTime, UpdatedAt: seedTime},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDGarudaU17, Name: "Garuda U17", ClusterID: ClusterIDNorth, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: TeamIDRajawaliU19, Name: "Rajawali U19", ClusterID: ClusterIDNorth, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: TeamIDHarimauU17, Name: "Harimau U17", ClusterID: ClusterIDSouth, CreatedAt: seedTime, UpdatedAt: seedTime},
	}
}

func SeedCoaches() []coach.Coach {
	return []coach.Coach{
		{ID: CoachIDBima, Name: "Bima Prasetyo", Specialty: "strength and conditioning", CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: CoachIDSari, Name: "Sari Wulandari", Specialty: "tactical analysis", CreatedAt: seedTime, UpdatedAt: seedTime},
	}
}

func SeedCoachAssignments() []team.CoachAssignment {
	return []team.CoachAssignment{
		{ID: "coach-assignment-01", CoachID: CoachIDBima, TeamID: TeamIDGarudaU17, Active: true, AssignedAt: seedTime},
		{ID: "coach-assignment-02", CoachID: CoachIDBima, TeamID: TeamIDRajawaliU19, Active: true, AssignedAt: seedTime},
		{ID: "coach-assignment-03", CoachID: CoachIDSari, TeamID: TeamIDHarimauU17, Active: true, AssignedAt: seedTime},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: PlayerIDEka, Name: "Eka Saputra", Position: player.PositionMidfielder, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: PlayerIDDimas, Name: "Dimas Nugroho", Position: player.PositionDefender, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: PlayerIDYoga, Name: "Yoga Pratama", Position: player.PositionGoalkeeper, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: PlayerIDRafi, Name: "Rafi Hidayat", Position: player.PositionForward, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: PlayerIDBayu, Name: "Bayu Santoso", Position: player.PositionMidfielder, CreatedAt: seedTime, UpdatedAt: seedTime},
	}
}

// SeedMemberships leaves Rafi and Bayu without a team so the join request
// flow has unattached players to exercise.
func SeedMemberships() []team.Membership {
	return []team.Membership{
		{ID: "membership-01", PlayerID: PlayerIDEka, TeamID: TeamIDGarudaU17, Active: true, JoinedAt: seedTime, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: "membership-02", PlayerID: PlayerIDDimas, TeamID: TeamIDGarudaU17, Active: true, JoinedAt: seedTime, CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: "membership-03", PlayerID: PlayerIDYoga, TeamID: TeamIDHarimauU17, Active: true, JoinedAt: seedTime, CreatedAt: seedTime, UpdatedAt: seedTime},
	}
}
