package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"notiguard/internal/models"
)

const noticeColumns = `id, title, body, department, effective_date, category, created_at`

// RecentNotices returns up to limit notices, most recent effective date first.
func (d *DB) RecentNotices(ctx context.Context, limit int) ([]models.Notice, error) {
	query := `
		SELECT ` + noticeColumns + `
		FROM notices
		ORDER BY effective_date DESC NULLS LAST, id DESC
		LIMIT $1
	`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent notices: %w", err)
	}
	return collectNotices(rows)
}

// SearchNotices returns notices whose title, body or department contains
// keyword, case-insensitively, most recent first.
func (d *DB) SearchNotices(ctx context.Context, keyword string, limit int) ([]models.Notice, error) {
	query := `
		SELECT ` + noticeColumns + `
		FROM notices
		WHERE title ILIKE $1 OR body ILIKE $1 OR department ILIKE $1
		ORDER BY effective_date DESC NULLS LAST, id DESC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, "%"+escapeLike(keyword)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search notices: %w", err)
	}
	return collectNotices(rows)
}

// GetNoticeByID retrieves a single notice.
func (d *DB) GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE id = $1`

	n, err := scanNotice(d.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoticeNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// CreateNotice inserts a notice and sets its ID and CreatedAt.
func (d *DB) CreateNotice(ctx context.Context, n *models.Notice) error {
	query := `
		INSERT INTO notices (title, body, department, effective_date, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return d.Pool.QueryRow(ctx, query,
		n.Title,
		n.Body,
		n.Department,
		nullIfZeroTime(n.EffectiveDate),
		n.Category,
	).Scan(&n.ID, &n.CreatedAt)
}

func collectNotices(rows pgx.Rows) ([]models.Notice, error) {
	defer rows.Close()

	var notices []models.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *n)
	}
	return notices, rows.Err()
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	var effective *time.Time
	if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Department, &effective, &n.Category, &n.CreatedAt); err != nil {
		return nil, err
	}
	if effective != nil {
		n.EffectiveDate = *effective
	}
	return &n, nil
}

func nullIfZeroTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
