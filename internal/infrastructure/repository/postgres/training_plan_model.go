package postgres

import (
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
)

type trainingPlanTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	CoachID         string     `db:"coach_public_id"`
	GeneratedByAI   bool       `db:"generated_by_ai"`
	Difficulty      string     `db:"difficulty"`
	DurationWeeks   int        `db:"duration_weeks"`
	FocusArea       string     `db:"focus_area"`
	ClusterID       string     `db:"cluster_public_id"`
	Status          string     `db:"status"`
	ApprovalComment string     `db:"approval_comment"`
	CreatedAt       time.Time  `db:"created_at"`
	ApprovedAt      *time.Time `db:"approved_at"`
	RejectedAt      *time.Time `db:"rejected_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

type trainingPlanInsertModel struct {
	PublicID      string    `db:"public_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	CoachID       string    `db:"coach_public_id"`
	GeneratedByAI bool      `db:"generated_by_ai"`
	Difficulty    string    `db:"difficulty"`
	DurationWeeks int       `db:"duration_weeks"`
	FocusArea     string    `db:"focus_area"`
	ClusterID     string    `db:"cluster_public_id"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func trainingPlanFromRow(row trainingPlanTableModel) trainingplan.Plan {
	return trainingplan.Plan{
		ID:              row.PublicID,
		Title:           row.Title,
		Description:     row.Description,
		CoachID:         row.CoachID,
		GeneratedByAI:   row.GeneratedByAI,
		Difficulty:      row.Difficulty,
		DurationWeeks:   row.DurationWeeks,
		FocusArea:       row.FocusArea,
		ClusterID:       row.ClusterID,
		Status:          trainingplan.Status(row.Status),
		ApprovalComment: row.ApprovalComment,
		CreatedAt:       row.CreatedAt,
		ApprovedAt:      row.ApprovedAt,
		RejectedAt:      row.RejectedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
