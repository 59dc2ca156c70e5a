package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"notiguard/internal/models"
)

// InquiryFilter narrows ListInquiries. Empty fields match everything.
type InquiryFilter struct {
	Status     string
	Department string
	Limit      int
}

const inquirySelect = `
	SELECT i.id, i.employee_id, COALESCE(NULLIF(e.name, ''), '게스트'), COALESCE(e.team, ''),
		i.department, i.question, i.content, i.status, i.created_at
	FROM inquiries i
	LEFT JOIN employees e ON e.employee_id = i.employee_id
`

// CreateInquiry stores a new pending inquiry and sets its ID, Status and
// CreatedAt.
func (d *DB) CreateInquiry(ctx context.Context, inq *models.Inquiry) error {
	query := `
		INSERT INTO inquiries (employee_id, department, question, content, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, status, created_at
	`

	err := d.Pool.QueryRow(ctx, query,
		inq.EmployeeID,
		inq.Department,
		inq.Question,
		inq.Content,
	).Scan(&inq.ID, &inq.Status, &inq.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// GetInquiryByID retrieves an inquiry with the asking employee's name.
func (d *DB) GetInquiryByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	inq, err := scanInquiry(d.Pool.QueryRow(ctx, inquirySelect+` WHERE i.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// ListInquiries returns inquiries newest first.
func (d *DB) ListInquiries(ctx context.Context, f InquiryFilter) ([]models.Inquiry, error) {
	var conds []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if f.Department != "" {
		args = append(args, f.Department)
		conds = append(conds, fmt.Sprintf("i.department = $%d", len(args)))
	}

	query := inquirySelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY i.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var out []models.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inq)
	}
	return out, rows.Err()
}

// UpdateInquiryStatus changes an inquiry's status.
func (d *DB) UpdateInquiryStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := d.Pool.Exec(ctx, `
		UPDATE inquiries SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

// PendingInquiriesByDepartment groups every pending inquiry by department,
// oldest first within each group.
func (d *DB) PendingInquiriesByDepartment(ctx context.Context) (map[string][]models.Inquiry, error) {
	rows, err := d.Pool.Query(ctx, inquirySelect+` WHERE i.status = 'pending' ORDER BY i.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending inquiries: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Inquiry)
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out[inq.Department] = append(out[inq.Department], *inq)
	}
	return out, rows.Err()
}

func scanInquiry(row pgx.Row) (*models.Inquiry, error) {
	var inq models.Inquiry
	err := row.Scan(
		&inq.ID,
		&inq.EmployeeID,
		&inq.EmployeeName,
		&inq.EmployeeTeam,
		&inq.Department,
		&inq.Question,
		&inq.Content,
		&inq.Status,
		&inq.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inq, nil
}
