package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
	qb "github.com/andrisetiawan/squadhub/internal/platform/querybuilder"
)

type JoinRequestRepository struct {
	db *sqlx.DB
}

func NewJoinRequestRepository(db *sqlx.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Create(ctx context.Context, req joinrequest.JoinRequest) error {
	model := joinRequestInsertModel{
		PublicID:  req.ID,
		PlayerID:  req.PlayerID,
		TeamID:    req.TeamID,
		Status:    string(req.Status),
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}

	query, args, err := qb.InsertModel("join_requests", model, "")
	if err != nil {
		return fmt.Errorf("build insert join request query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert join request: %w", err)
	}
	return nil
}

func (r *JoinRequestRepository) GetByID(ctx context.Context, requestID string) (joinrequest.JoinRequest, bool, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(qb.Eq("public_id", requestID)).
		ToSQL()
	if err != nil {
		return joinrequest.JoinRequest{}, false, fmt.Errorf("build get join request by id query: %w", err)
	}

	var row joinRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return joinrequest.JoinRequest{}, false, nil
		}
		return joinrequest.JoinRequest{}, false, fmt.Errorf("get join request by id: %w", err)
	}
	return joinRequestFromRow(row), true, nil
}

func (r *JoinRequestRepository) ListByPlayer(ctx context.Context, playerID string) ([]joinrequest.JoinRequest, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list join requests by player query: %w", err)
	}

	var rows []joinRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list join requests by player: %w", err)
	}

	out := make([]joinrequest.JoinRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, joinRequestFromRow(row))
	}
	return out, nil
}

func (r *JoinRequestRepository) ListByTeam(ctx context.Context, teamID string, status joinrequest.Status) ([]joinrequest.JoinRequest, error) {
	conditions := []qb.Condition{qb.Eq("team_public_id", teamID)}
	if status != "" {
		conditions = append(conditions, qb.Eq("status", string(status)))
	}

	query, args, err := qb.Select("*").From("join_requests").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list join requests by team query: %w", err)
	}

	var rows []joinRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list join requests by team: %w", err)
	}

	out := make([]joinrequest.JoinRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, joinRequestFromRow(row))
	}
	return out, nil
}

// Approve flips the request to APPROVED and inserts the membership row in a
// single transaction. The request row is locked first so a concurrent decide
// waits instead of double-writing.
func (r *JoinRequestRepository) Approve(ctx context.Context, requestID, coachID, membershipID, comment string, reviewedAt time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approve join request tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("player_public_id", "team_public_id", "status").
		From("join_requests").
		Where(qb.Eq("public_id", requestID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock join request query: %w", err)
	}

	var locked struct {
		PlayerID string `db:"player_public_id"`
		TeamID   string `db:"team_public_id"`
		Status   string `db:"status"`
	}
	if err := tx.GetContext(ctx, &locked, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("join request %s not found", requestID)
		}
		return fmt.Errorf("lock join request: %w", err)
	}
	if joinrequest.Status(locked.Status) != joinrequest.StatusPending {
		return joinrequest.ErrStaleStatus
	}

	membership := membershipInsertModel{
		PublicID: membershipID,
		PlayerID: locked.PlayerID,
		TeamID:   locked.TeamID,
		Active:   true,
		JoinedAt: reviewedAt,
	}
	query, args, err = qb.InsertModel("team_memberships", membership, "")
	if err != nil {
		return fmt.Errorf("build insert membership query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}

	query, args, err = qb.Update("join_requests").
		Set("status", string(joinrequest.StatusApproved)).
		Set("coach_public_id", coachID).
		Set("review_comment", comment).
		Set("reviewed_at", reviewedAt).
		Set("updated_at", reviewedAt).
		Where(
			qb.Eq("public_id", requestID),
			qb.Eq("status", string(joinrequest.StatusPending)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build approve join request query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("approve join request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected approve join request: %w", err)
	}
	if affected == 0 {
		return joinrequest.ErrStaleStatus
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit approve join request tx: %w", err)
	}
	return nil
}

func (r *JoinRequestRepository) Decide(ctx context.Context, requestID string, to joinrequest.Status, coachID, comment string, reviewedAt time.Time) error {
	query, args, err := qb.Update("join_requests").
		Set("status", string(to)).
		Set("coach_public_id", coachID).
		Set("review_comment", comment).
		Set("reviewed_at", reviewedAt).
		Set("updated_at", reviewedAt).
		Where(
			qb.Eq("public_id", requestID),
			qb.Eq("status", string(joinrequest.StatusPending)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build decide join request query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("decide join request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected decide join request: %w", err)
	}
	if affected == 0 {
		return joinrequest.ErrStaleStatus
	}
	return nil
}
