package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"notiguard/internal/models"
)

// LatestUnacknowledgedPopup returns the newest popup targeted at the employee
// that the employee has not responded to. Team targets take precedence over
// department targets; a popup with neither reaches nobody. Returns nil when
// there is none.
func (d *DB) LatestUnacknowledgedPopup(ctx context.Context, employeeID string) (*models.PopupSummary, error) {
	query := `
		SELECT p.id, p.title
		FROM popups p
		JOIN employees e ON e.employee_id = $1
		WHERE NOT EXISTS (
			SELECT 1 FROM popup_logs l
			WHERE l.popup_id = p.id AND l.employee_id = $1
		)
		AND (
			(cardinality(p.target_teams) > 0 AND e.team = ANY(p.target_teams))
			OR (cardinality(p.target_teams) = 0 AND e.department = ANY(p.target_departments))
		)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT 1
	`

	var s models.PopupSummary
	err := d.Pool.QueryRow(ctx, query, employeeID).Scan(&s.ID, &s.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query popups: %w", err)
	}
	return &s, nil
}

// RecordPopupAction stores an employee's response to a popup.
func (d *DB) RecordPopupAction(ctx context.Context, employeeID string, popupID int64, action string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO popup_logs (popup_id, employee_id, action)
		VALUES ($1, $2, $3)
	`, popupID, employeeID, action)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPopupNotFound
		}
		return fmt.Errorf("failed to record popup action: %w", err)
	}
	return nil
}

// AcknowledgePopup records that the employee confirmed the popup from chat.
func (d *DB) AcknowledgePopup(ctx context.Context, employeeID string, popupID int64) error {
	return d.RecordPopupAction(ctx, employeeID, popupID, models.PopupActionChatbot)
}

// CreatePopup inserts a popup and sets its ID and CreatedAt.
func (d *DB) CreatePopup(ctx context.Context, p *models.Popup) error {
	depts := p.TargetDepartments
	if depts == nil {
		depts = []string{}
	}
	teams := p.TargetTeams
	if teams == nil {
		teams = []string{}
	}

	query := `
		INSERT INTO popups (notice_id, title, content, target_departments, target_teams)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query, p.NoticeID, p.Title, p.Content, depts, teams).Scan(&p.ID, &p.CreatedAt)
}
