package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"notiguard/internal/db"
	"notiguard/internal/middleware"
	"notiguard/internal/models"
	"notiguard/internal/validation"
)

// InquiryStore persists inquiries.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inq *models.Inquiry) error
	GetInquiryByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error)
	ListInquiries(ctx context.Context, f db.InquiryFilter) ([]models.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id uuid.UUID, status string) error
}

// InquiryWriter drafts inquiry letters.
type InquiryWriter interface {
	RefineForDepartment(ctx context.Context, department, question, draft string) string
	DetectDepartment(question string) string
}

// InquiryNotifier tells a department about a new inquiry.
type InquiryNotifier interface {
	NotifyInquiryCreated(inq *models.Inquiry) bool
}

// InquiryHandler serves inquiry escalation and the admin inquiry inbox.
type InquiryHandler struct {
	db        InquiryStore
	writer    InquiryWriter
	notifier  InquiryNotifier
	directory validation.DepartmentDirectory
}

// NewInquiryHandler creates a new API inquiry handler.
func NewInquiryHandler(store InquiryStore, writer InquiryWriter, notifier InquiryNotifier, directory validation.DepartmentDirectory) *InquiryHandler {
	return &InquiryHandler{db: store, writer: writer, notifier: notifier, directory: directory}
}

// Refine turns an employee's draft into a polite inquiry letter. The
// department is detected from the question when omitted.
func (h *InquiryHandler) Refine(c fiber.Ctx) error {
	var body struct {
		Department string `json:"department"`
		Question   string `json:"question"`
		Draft      string `json:"draft"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateQuestion(body.Question); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	department := strings.TrimSpace(body.Department)
	if department == "" {
		department = h.writer.DetectDepartment(body.Question)
	}
	if valid, msg := validation.ValidateDepartment(department, h.directory); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	content := h.writer.RefineForDepartment(c.Context(), department, strings.TrimSpace(body.Question), strings.TrimSpace(body.Draft))

	return jsonSuccess(c, fiber.Map{
		"department": department,
		"content":    content,
	})
}

// Create stores an inquiry and mails it to the department in the background.
func (h *InquiryHandler) Create(c fiber.Ctx) error {
	employee := middleware.CurrentEmployee(c)
	if employee == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Department string `json:"department"`
		Question   string `json:"question"`
		Content    string `json:"content"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateDepartment(body.Department, h.directory); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateInquiryContent(body.Content); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	inq := &models.Inquiry{
		EmployeeID:   employee.EmployeeID,
		EmployeeName: employee.Name,
		EmployeeTeam: employee.Team,
		Department:   strings.TrimSpace(body.Department),
		Question:     strings.TrimSpace(body.Question),
		Content:      strings.TrimSpace(body.Content),
	}
	if err := h.db.CreateInquiry(c.Context(), inq); err != nil {
		slog.Error("failed to create inquiry", "employee_id", employee.EmployeeID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to create inquiry")
	}

	mailed := false
	if h.notifier != nil {
		mailed = h.notifier.NotifyInquiryCreated(inq)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   inq,
		"mailed": mailed,
	})
}

// List returns inquiries filtered by ?status= and ?department=.
func (h *InquiryHandler) List(c fiber.Ctx) error {
	status := c.Query("status")
	if status != "" {
		if valid, msg := validation.ValidateInquiryStatus(status); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
	}

	inquiries, err := h.db.ListInquiries(c.Context(), db.InquiryFilter{
		Status:     status,
		Department: c.Query("department"),
		Limit:      fiber.Query[int](c, "limit", 100),
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch inquiries")
	}

	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}
	return jsonSuccess(c, inquiries)
}

// Get returns a single inquiry.
func (h *InquiryHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid inquiry id")
	}

	inq, err := h.db.GetInquiryByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrInquiryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "inquiry not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch inquiry")
	}

	return jsonSuccess(c, inq)
}

// UpdateStatus marks an inquiry pending or completed.
func (h *InquiryHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid inquiry id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateInquiryStatus(body.Status); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if err := h.db.UpdateInquiryStatus(c.Context(), id, body.Status); err != nil {
		if errors.Is(err, db.ErrInquiryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "inquiry not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update inquiry")
	}

	return jsonSuccess(c, fiber.Map{"id": id, "status": body.Status})
}
