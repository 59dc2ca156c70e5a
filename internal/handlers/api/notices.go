package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"notiguard/internal/db"
	"notiguard/internal/models"
)

// NoticeReader loads a single notice.
type NoticeReader interface {
	GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error)
}

// NoticeHandler serves referenced notices to the chat view.
type NoticeHandler struct {
	db NoticeReader
}

// NewNoticeHandler creates a new API notice handler.
func NewNoticeHandler(store NoticeReader) *NoticeHandler {
	return &NoticeHandler{db: store}
}

// Get returns a notice by ID.
func (h *NoticeHandler) Get(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid notice id")
	}

	notice, err := h.db.GetNoticeByID(c.Context(), id)
	if errors.Is(err, db.ErrNoticeNotFound) {
		return jsonError(c, fiber.StatusNotFound, "notice not found")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch notice")
	}

	return jsonSuccess(c, notice)
}
