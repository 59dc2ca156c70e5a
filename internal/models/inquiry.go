package models

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry status constants
const (
	InquiryPending   = "pending"
	InquiryCompleted = "completed"
)

// Inquiry is a question escalated by an employee to a department.
type Inquiry struct {
	ID           uuid.UUID `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"` // populated by joins, "게스트" when unknown
	EmployeeTeam string    `json:"employee_team,omitempty"`
	Department   string    `json:"department"`
	Question     string    `json:"question"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsPending returns true if the inquiry still awaits an answer.
func (i *Inquiry) IsPending() bool {
	return i.Status == InquiryPending
}
