package db

import "errors"

// Domain-level database error sentinels.
var (
	// Employee errors
	ErrEmployeeNotFound = errors.New("employee not found")

	// Notice errors
	ErrNoticeNotFound = errors.New("notice not found")

	// Popup errors
	ErrPopupNotFound = errors.New("popup not found")

	// Inquiry errors
	ErrInquiryNotFound = errors.New("inquiry not found")
)
