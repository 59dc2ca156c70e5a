package validation

import (
	"strings"
	"unicode/utf8"

	"notiguard/internal/models"
)

// Length limits, counted in characters.
const (
	MaxQuestionLength   = 1000
	MaxInquiryLength    = 5000
	MaxDepartmentLength = 100
)

// DepartmentDirectory reports which departments can receive inquiries.
type DepartmentDirectory interface {
	EmailFor(department string) (string, bool)
}

// ValidateQuestion checks that a chat question is present and not oversized.
func ValidateQuestion(question string) (bool, string) {
	question = strings.TrimSpace(question)
	if question == "" {
		return false, "Question is required"
	}
	if utf8.RuneCountInString(question) > MaxQuestionLength {
		return false, "Question is too long"
	}
	return true, ""
}

// ValidateInquiryContent checks the body of an inquiry letter.
func ValidateInquiryContent(content string) (bool, string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return false, "Inquiry content is required"
	}
	if utf8.RuneCountInString(content) > MaxInquiryLength {
		return false, "Inquiry content is too long"
	}
	return true, ""
}

// ValidateDepartment checks that a department exists in the directory with
// an inquiry address.
func ValidateDepartment(department string, directory DepartmentDirectory) (bool, string) {
	department = strings.TrimSpace(department)
	if department == "" {
		return false, "Department is required"
	}
	if utf8.RuneCountInString(department) > MaxDepartmentLength {
		return false, "Department name is too long"
	}
	if directory != nil {
		if _, ok := directory.EmailFor(department); !ok {
			return false, "Unknown department"
		}
	}
	return true, ""
}

// ValidateInquiryStatus checks a requested inquiry status transition target.
func ValidateInquiryStatus(status string) (bool, string) {
	switch status {
	case models.InquiryPending, models.InquiryCompleted:
		return true, ""
	case "":
		return false, "Status is required"
	default:
		return false, "Status must be pending or completed"
	}
}
