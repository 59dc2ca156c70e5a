package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"notiguard/internal/db"
	"notiguard/internal/middleware"
	"notiguard/internal/models"
	"notiguard/internal/validation"
)

// ChatService answers questions and hands off popups.
type ChatService interface {
	Ask(ctx context.Context, req models.QueryRequest) (*models.QueryResult, error)
	LatestPopup(ctx context.Context, employeeID string) (*models.PopupSummary, error)
	AcknowledgePopup(ctx context.Context, employeeID string, popupID int64) error
}

// ChatHandler serves the chat API.
type ChatHandler struct {
	assistant ChatService
}

// NewChatHandler creates a new API chat handler.
func NewChatHandler(assistant ChatService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// Ask runs the question through the assistant pipeline.
func (h *ChatHandler) Ask(c fiber.Ctx) error {
	employee := middleware.CurrentEmployee(c)
	if employee == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateQuestion(body.Question); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	result, err := h.assistant.Ask(c.Context(), models.QueryRequest{
		Requester: *employee,
		Question:  strings.TrimSpace(body.Question),
	})
	if err != nil {
		slog.Error("failed to answer question", "employee_id", employee.EmployeeID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to answer question")
	}

	return jsonSuccess(c, result)
}

// Popup returns the newest popup the employee has not acted on. Data is null
// when there is none.
func (h *ChatHandler) Popup(c fiber.Ctx) error {
	employee := middleware.CurrentEmployee(c)
	if employee == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	popup, err := h.assistant.LatestPopup(c.Context(), employee.EmployeeID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch popup")
	}

	return jsonSuccess(c, popup)
}

// AcknowledgePopup records that the employee opened the popup from chat.
func (h *ChatHandler) AcknowledgePopup(c fiber.Ctx) error {
	employee := middleware.CurrentEmployee(c)
	if employee == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid popup id")
	}

	if err := h.assistant.AcknowledgePopup(c.Context(), employee.EmployeeID, id); err != nil {
		if errors.Is(err, db.ErrPopupNotFound) {
			return jsonError(c, fiber.StatusNotFound, "popup not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to acknowledge popup")
	}

	return jsonSuccess(c, fiber.Map{"id": id, "action": models.PopupActionChatbot})
}
