package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"notiguard/internal/config"
	"notiguard/internal/db"
	"notiguard/internal/models"
)

// SessionKey is the session entry holding the signed-in employee ID.
const SessionKey = "employee_id"

// EmployeeStore loads employees by employee number.
type EmployeeStore interface {
	GetEmployeeByID(ctx context.Context, employeeID string) (*models.Employee, error)
}

// AuthMiddleware identifies employees via the session or a trusted header.
type AuthMiddleware struct {
	db  EmployeeStore
	cfg *config.Config
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(store EmployeeStore, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{db: store, cfg: cfg}
}

// RequireAuth ensures the employee is authenticated. API requests get a JSON
// 401, page requests are redirected to /login.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	employee, err := m.identify(c)
	if err != nil {
		slog.Error("failed to load employee", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load employee")
	}
	if employee == nil {
		return unauthorized(c)
	}

	c.Locals("employee", employee)
	return c.Next()
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	employee := CurrentEmployee(c)
	if employee == nil {
		return unauthorized(c)
	}
	if !employee.IsAdmin() {
		if isAPI(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "error": "admin access required"})
		}
		return fiber.NewError(fiber.StatusForbidden, "관리자만 접근할 수 있습니다")
	}
	return c.Next()
}

// CurrentEmployee returns the employee stored by RequireAuth, or nil.
func CurrentEmployee(c fiber.Ctx) *models.Employee {
	employee, _ := c.Locals("employee").(*models.Employee)
	return employee
}

// identify resolves the caller. A nil employee with a nil error means the
// request is anonymous.
func (m *AuthMiddleware) identify(c fiber.Ctx) (*models.Employee, error) {
	if m.cfg.IdentityHeader != "" {
		if id := employeeIDFromHeader(c.Get(m.cfg.IdentityHeader)); id != "" {
			return m.headerEmployee(c.Context(), id)
		}
	}

	sess := session.FromContext(c)
	if sess == nil {
		return nil, nil
	}
	id, _ := sess.Get(SessionKey).(string)
	if id == "" {
		return nil, nil
	}

	employee, err := m.db.GetEmployeeByID(c.Context(), id)
	if errors.Is(err, db.ErrEmployeeNotFound) {
		sess.Destroy()
		return nil, nil
	}
	return employee, err
}

// headerEmployee loads a gateway-identified employee. Unknown IDs are still
// allowed in, with only their ID and ADMIN_IDS-derived role.
func (m *AuthMiddleware) headerEmployee(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := m.db.GetEmployeeByID(ctx, id)
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, db.ErrEmployeeNotFound) {
		return nil, err
	}

	role := models.RoleEmployee
	if m.cfg.IsAdminID(id) {
		role = models.RoleAdmin
	}
	return &models.Employee{EmployeeID: id, Role: role}, nil
}

func unauthorized(c fiber.Ctx) error {
	if isAPI(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "error": "authentication required"})
	}
	return c.Redirect().To("/login")
}

func isAPI(c fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// employeeIDFromHeader accepts either a bare employee ID or a certificate
// style "Name (id)" value.
func employeeIDFromHeader(value string) string {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, "()") {
		return employeeIDFromCN(value)
	}
	return value
}

// employeeIDFromCN extracts the ID from a "Full Name (id)" common name.
func employeeIDFromCN(cn string) string {
	cn = strings.TrimSpace(cn)
	if !strings.HasSuffix(cn, ")") {
		return ""
	}

	open := strings.LastIndex(cn, "(")
	if open < 0 {
		return ""
	}

	inner := cn[open+1 : len(cn)-1]
	if strings.ContainsAny(inner, "()") {
		return ""
	}
	return strings.TrimSpace(inner)
}
