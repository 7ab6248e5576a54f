package httpapi

import (
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
	"github.com/andrisetiawan/squadhub/internal/domain/coach"
	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
	"github.com/andrisetiawan/squadhub/internal/domain/player"
	"github.com/andrisetiawan/squadhub/internal/domain/progress"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

type clusterDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClusterID string `json:"cluster_id"`
}

type playerDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	BirthDate string `json:"birth_date,omitempty"`
}

type coachDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

type membershipDTO struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Active   bool   `json:"active"`
	JoinedAt string `json:"joined_at"`
	LeftAt   string `json:"left_at,omitempty"`
}

type rosterEntryDTO struct {
	Membership membershipDTO `json:"membership"`
	Player     playerDTO     `json:"player"`
}

type joinRequestDTO struct {
	ID            string `json:"id"`
	PlayerID      string `json:"player_id"`
	TeamID        string `json:"team_id"`
	CoachID       string `json:"coach_id,omitempty"`
	Status        string `json:"status"`
	ReviewComment string `json:"review_comment,omitempty"`
	CreatedAt     string `json:"created_at"`
	ReviewedAt    string `json:"reviewed_at,omitempty"`
}

type trainingPlanDTO struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	CoachID         string `json:"coach_id,omitempty"`
	GeneratedByAI   bool   `json:"generated_by_ai"`
	Difficulty      string `json:"difficulty,omitempty"`
	DurationWeeks   int    `json:"duration_weeks"`
	FocusArea       string `json:"focus_area,omitempty"`
	ClusterID       string `json:"cluster_id,omitempty"`
	Status          string `json:"status"`
	ApprovalComment string `json:"approval_comment,omitempty"`
	CreatedAt       string `json:"created_at"`
	ApprovedAt      string `json:"approved_at,omitempty"`
	RejectedAt      string `json:"rejected_at,omitempty"`
}

type assignmentDTO struct {
	ID          string `json:"id"`
	PlanID      string `json:"plan_id"`
	PlayerID    string `json:"player_id,omitempty"`
	TeamID      string `json:"team_id,omitempty"`
	CoachID     string `json:"coach_id"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	ApprovedAt  string `json:"approved_at,omitempty"`
	CancelledAt string `json:"cancelled_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type progressRecordDTO struct {
	ID                   string `json:"id"`
	AssignmentID         string `json:"assignment_id"`
	RecordedByPlayerID   string `json:"recorded_by_player_id,omitempty"`
	RecordedByCoachID    string `json:"recorded_by_coach_id,omitempty"`
	Date                 string `json:"date"`
	CompletionPercentage int    `json:"completion_percentage"`
	Notes                string `json:"notes,omitempty"`
	CoachVerified        bool   `json:"coach_verified"`
	VerifiedByCoachID    string `json:"verified_by_coach_id,omitempty"`
	VerifiedAt           string `json:"verified_at,omitempty"`
	VerificationComment  string `json:"verification_comment,omitempty"`
}

type bulkAssignFailureDTO struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

type bulkAssignResultDTO struct {
	Plan          trainingPlanDTO        `json:"plan"`
	Assignments   []assignmentDTO        `json:"assignments"`
	AssignedCount int                    `json:"assigned_count"`
	FailedCount   int                    `json:"failed_count"`
	Failures      []bulkAssignFailureDTO `json:"failures,omitempty"`
}

type playerTrainingStatusDTO struct {
	Entry             rosterEntryDTO `json:"entry"`
	ActiveAssignments int            `json:"active_assignments"`
}

type teamTrainingOverviewDTO struct {
	Team                 teamDTO                        `json:"team"`
	Players              []playerTrainingStatusDTO      `json:"players"`
	Assignments          []assignmentDTO                `json:"assignments"`
	ProgressByAssignment map[string][]progressRecordDTO `json:"progress_by_assignment"`
}

func clusterToDTO(v cluster.Cluster) clusterDTO {
	return clusterDTO{ID: v.ID, Name: v.Name, Location: v.Location}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name, ClusterID: v.ClusterID}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		Position:  string(v.Position),
		BirthDate: formatOptionalTime(v.BirthDate),
	}
}

func coachToDTO(v coach.Coach) coachDTO {
	return coachDTO{ID: v.ID, Name: v.Name, Specialty: v.Specialty}
}

func membershipToDTO(v team.Membership) membershipDTO {
	return membershipDTO{
		ID:       v.ID,
		PlayerID: v.PlayerID,
		TeamID:   v.TeamID,
		Active:   v.Active,
		JoinedAt: v.JoinedAt.UTC().Format(time.RFC3339),
		LeftAt:   formatOptionalTime(v.LeftAt),
	}
}

func rosterEntryToDTO(v usecase.RosterEntry) rosterEntryDTO {
	return rosterEntryDTO{
		Membership: membershipToDTO(v.Membership),
		Player:     playerToDTO(v.Player),
	}
}

func joinRequestToDTO(v joinrequest.JoinRequest) joinRequestDTO {
	return joinRequestDTO{
		ID:            v.ID,
		PlayerID:      v.PlayerID,
		TeamID:        v.TeamID,
		CoachID:       v.CoachID,
		Status:        string(v.Status),
		ReviewComment: v.ReviewComment,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
		ReviewedAt:    formatOptionalTime(v.ReviewedAt),
	}
}

func trainingPlanToDTO(v trainingplan.Plan) trainingPlanDTO {
	return trainingPlanDTO{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		CoachID:         v.CoachID,
		GeneratedByAI:   v.GeneratedByAI,
		Difficulty:      v.Difficulty,
		DurationWeeks:   v.DurationWeeks,
		FocusArea:       v.FocusArea,
		ClusterID:       v.ClusterID,
		Status:          string(v.Status),
		ApprovalComment: v.ApprovalComment,
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
		ApprovedAt:      formatOptionalTime(v.ApprovedAt),
		RejectedAt:      formatOptionalTime(v.RejectedAt),
	}
}

func assignmentToDTO(v assignment.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:          v.ID,
		PlanID:      v.PlanID,
		PlayerID:    v.Target.PlayerID,
		TeamID:      v.Target.TeamID,
		CoachID:     v.CoachID,
		Status:      string(v.Status),
		StartDate:   formatOptionalTime(v.StartDate),
		EndDate:     formatOptionalTime(v.EndDate),
		ApprovedAt:  formatOptionalTime(v.ApprovedAt),
		CancelledAt: formatOptionalTime(v.CancelledAt),
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func assignmentsToDTO(items []assignment.Assignment) []assignmentDTO {
	out := make([]assignmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, assignmentToDTO(item))
	}
	return out
}

func progressRecordToDTO(v progress.Record) progressRecordDTO {
	return progressRecordDTO{
		ID:                   v.ID,
		AssignmentID:         v.AssignmentID,
		RecordedByPlayerID:   v.RecordedBy.PlayerID,
		RecordedByCoachID:    v.RecordedBy.CoachID,
		Date:                 v.Date.UTC().Format(time.RFC3339),
		CompletionPercentage: v.CompletionPercentage,
		Notes:                v.Notes,
		CoachVerified:        v.CoachVerified,
		VerifiedByCoachID:    v.VerifiedByCoachID,
		VerifiedAt:           formatOptionalTime(v.VerifiedAt),
		VerificationComment:  v.VerificationComment,
	}
}

func progressRecordsToDTO(items []progress.Record) []progressRecordDTO {
	out := make([]progressRecordDTO, 0, len(items))
	for _, item := range items {
		out = append(out, progressRecordToDTO(item))
	}
	return out
}

func bulkAssignResultToDTO(v usecase.BulkAssignResult) bulkAssignResultDTO {
	failures := make([]bulkAssignFailureDTO, 0, len(v.Failures))
	for _, failure := range v.Failures {
		failures = append(failures, bulkAssignFailureDTO{PlayerID: failure.PlayerID, Reason: failure.Reason})
	}

	return bulkAssignResultDTO{
		Plan:          trainingPlanToDTO(v.Plan),
		Assignments:   assignmentsToDTO(v.Assignments),
		AssignedCount: v.AssignedCount,
		FailedCount:   v.FailedCount,
		Failures:      failures,
	}
}

func teamTrainingOverviewToDTO(v usecase.TeamTrainingOverview) teamTrainingOverviewDTO {
	players := make([]playerTrainingStatusDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerTrainingStatusDTO{
			Entry:             rosterEntryToDTO(p.Entry),
			ActiveAssignments: p.ActiveAssignments,
		})
	}

	progressByAssignment := make(map[string][]progressRecordDTO, len(v.ProgressByAssignment))
	for assignmentID, records := range v.ProgressByAssignment {
		progressByAssignment[assignmentID] = progressRecordsToDTO(records)
	}

	return teamTrainingOverviewDTO{
		Team:                 teamToDTO(v.Team),
		Players:              players,
		Assignments:          assignmentsToDTO(v.Assignments),
		ProgressByAssignment: progressByAssignment,
	}
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
