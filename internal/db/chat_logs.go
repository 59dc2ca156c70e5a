package db

import (
	"context"
	"encoding/json"
	"fmt"

	"notiguard/internal/models"
)

// AppendChatLog stores one exchange and sets its ID and CreatedAt.
func (d *DB) AppendChatLog(ctx context.Context, entry *models.ChatLog) error {
	refs := entry.ReferenceIDs
	if refs == nil {
		refs = []int64{}
	}
	kws := entry.Keywords
	if kws == nil {
		kws = []string{}
	}

	refsJSON, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("failed to encode notice refs: %w", err)
	}
	kwsJSON, err := json.Marshal(kws)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	query := `
		INSERT INTO chat_logs (employee_id, question, answer, response_type, label, notice_refs, keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = d.Pool.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.Question,
		entry.Answer,
		string(entry.Kind),
		entry.Label,
		refsJSON,
		kwsJSON,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append chat log: %w", err)
	}
	return nil
}

// ListKeywordRows returns the stored keywords of every logged question with
// the asking employee's team. Team is empty for unknown employees.
func (d *DB) ListKeywordRows(ctx context.Context) ([]models.KeywordLogRow, error) {
	query := `
		SELECT COALESCE(e.team, ''), c.keywords::text
		FROM chat_logs c
		LEFT JOIN employees e ON e.employee_id = c.employee_id
		ORDER BY c.created_at
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword rows: %w", err)
	}
	defer rows.Close()

	var out []models.KeywordLogRow
	for rows.Next() {
		var r models.KeywordLogRow
		if err := rows.Scan(&r.Team, &r.Keywords); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountChatLogs returns the number of logged exchanges per response kind.
func (d *DB) CountChatLogs(ctx context.Context) (map[models.ResponseKind]int, error) {
	rows, err := d.Pool.Query(ctx, `SELECT response_type, COUNT(*) FROM chat_logs GROUP BY response_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count chat logs: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ResponseKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[models.ResponseKind(kind)] = n
	}
	return counts, rows.Err()
}
