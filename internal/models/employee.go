package models

import "time"

// Role constants
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Employee is an authenticated portal user.
type Employee struct {
	EmployeeID string    `json:"employee_id"`
	Sub        string    `json:"sub"` // OIDC subject identifier, empty for header-identified employees
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Team       string    `json:"team"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAdmin returns true if the employee may see admin analytics.
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
