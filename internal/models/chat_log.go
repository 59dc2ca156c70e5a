package models

import (
	"time"

	"github.com/google/uuid"
)

// ResponseKind classifies a completion.
type ResponseKind string

// Response kind constants
const (
	KindNormal     ResponseKind = "NORMAL"
	KindMissing    ResponseKind = "MISSING"
	KindIrrelevant ResponseKind = "IRRELEVANT"
)

// ChatLog is one persisted question/answer exchange. Rows are append-only.
type ChatLog struct {
	ID           uuid.UUID    `json:"id"`
	EmployeeID   string       `json:"employee_id"`
	Question     string       `json:"question"`
	Answer       string       `json:"answer"` // raw completion text, sentinels included
	Kind         ResponseKind `json:"kind"`
	Label        string       `json:"label"`
	ReferenceIDs []int64      `json:"reference_ids"`
	Keywords     []string     `json:"keywords"`
	CreatedAt    time.Time    `json:"created_at"`
}

// KeywordLogRow is the projection of a chat log used for keyword analytics.
// Team is empty when the asking employee has no resolvable team.
type KeywordLogRow struct {
	Team     string
	Keywords string // JSON array as stored
}
