package models

import "time"

// Popup action constants
const (
	PopupActionConfirmed = "confirmed"
	PopupActionIgnored   = "ignored"
	PopupActionChatbot   = "chatbot"
)

// Popup is a notice pushed to targeted teams or departments.
type Popup struct {
	ID                int64     `json:"id"`
	NoticeID          int64     `json:"notice_id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	TargetDepartments []string  `json:"target_departments"`
	TargetTeams       []string  `json:"target_teams"`
	CreatedAt         time.Time `json:"created_at"`
}

// PopupSummary is what the chat surface needs to offer a popup hand-off.
type PopupSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
