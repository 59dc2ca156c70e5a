package models

// QueryRequest is one question asked by an employee.
type QueryRequest struct {
	Requester Employee
	Question  string
}

// QueryResult is the post-processed answer returned to every front-end surface.
type QueryResult struct {
	Answer       string       `json:"response"`
	Kind         ResponseKind `json:"response_type"`
	ReferenceIDs []int64      `json:"notice_refs"`
	References   []Reference  `json:"notice_details"`
	Keywords     []string     `json:"keywords"`
	Label        string       `json:"label"`
}
