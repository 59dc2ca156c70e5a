package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"notiguard/internal/config"
	"notiguard/internal/handlers/api"
	"notiguard/internal/middleware"
	"notiguard/internal/stats"
)

// PageHandler renders the HTML pages.
type PageHandler struct {
	cfg   *config.Config
	stats api.StatsStore
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config, store api.StatsStore) *PageHandler {
	return &PageHandler{cfg: cfg, stats: store}
}

// Login renders the sign-in page.
func (h *PageHandler) Login(c fiber.Ctx) error {
	return c.Render("login", MergeBranding(fiber.Map{
		"Title":       "로그인",
		"OIDCEnabled": h.cfg.OIDCIssuer != "",
	}, h.cfg, nil))
}

// Chat renders the chat page.
func (h *PageHandler) Chat(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"Title": "공지사항 챗봇",
	}, h.cfg, middleware.CurrentEmployee(c)))
}

// Keywords renders the admin keyword analytics table.
func (h *PageHandler) Keywords(c fiber.Ctx) error {
	team := c.Query("team", stats.TeamAll)

	report, err := api.BuildKeywordReport(c.Context(), h.stats, team, fiber.Query[int](c, "limit", 50))
	if err != nil {
		slog.Error("failed to build keyword report", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "키워드 통계를 불러오지 못했습니다")
	}

	return c.Render("keywords", MergeBranding(fiber.Map{
		"Title":  "질문 키워드 통계",
		"Report": report,
	}, h.cfg, middleware.CurrentEmployee(c)))
}
