package models

import "time"

// Notice is a single company announcement.
type Notice struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Department    string    `json:"department"`
	EffectiveDate time.Time `json:"effective_date"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
}

// Reference is a notice an answer is considered to be about.
type Reference struct {
	NoticeID int64  `json:"notice_id"`
	Title    string `json:"title"`
}
