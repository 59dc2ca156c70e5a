package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notiguard/internal/models"
	"notiguard/internal/stats"
)

const (
	defaultStatsLimit = 20
	maxStatsLimit     = 200
)

// StatsStore reads the chat log for analytics.
type StatsStore interface {
	ListKeywordRows(ctx context.Context) ([]models.KeywordLogRow, error)
	CountChatLogs(ctx context.Context) (map[models.ResponseKind]int, error)
}

// KeywordReport is the admin keyword analytics payload.
type KeywordReport struct {
	Team      string                      `json:"team"`
	Teams     []string                    `json:"teams"`
	Keywords  []stats.TermCount           `json:"keywords"`
	Responses map[models.ResponseKind]int `json:"responses"`
}

// BuildKeywordReport aggregates the chat log for team (ALL when empty).
func BuildKeywordReport(ctx context.Context, store StatsStore, team string, limit int) (*KeywordReport, error) {
	if team == "" {
		team = stats.TeamAll
	}
	if limit <= 0 {
		limit = defaultStatsLimit
	}
	if limit > maxStatsLimit {
		limit = maxStatsLimit
	}

	rows, err := store.ListKeywordRows(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := store.CountChatLogs(ctx)
	if err != nil {
		return nil, err
	}

	aggregate := stats.Aggregate(rows)
	return &KeywordReport{
		Team:      team,
		Teams:     aggregate.Teams(),
		Keywords:  stats.Top(aggregate[team], limit),
		Responses: counts,
	}, nil
}

// StatsHandler serves admin analytics.
type StatsHandler struct {
	db StatsStore
}

// NewStatsHandler creates a new API stats handler.
func NewStatsHandler(store StatsStore) *StatsHandler {
	return &StatsHandler{db: store}
}

// KeywordStats returns the most frequent question terms for ?team= (default
// ALL), capped by ?limit=.
func (h *StatsHandler) KeywordStats(c fiber.Ctx) error {
	report, err := BuildKeywordReport(c.Context(), h.db, c.Query("team"), fiber.Query[int](c, "limit", defaultStatsLimit))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load keyword stats")
	}
	return jsonSuccess(c, report)
}
