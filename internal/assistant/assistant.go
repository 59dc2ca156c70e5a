// Package assistant runs the question-answering pipeline: it selects notices,
// builds the prompt, calls the completion service, classifies and cleans the
// answer, resolves the notices it refers to and logs the exchange.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notiguard/internal/completion"
	"notiguard/internal/keywords"
	"notiguard/internal/metrics"
	"notiguard/internal/models"
	"notiguard/internal/prompt"
	"notiguard/internal/references"
	"notiguard/internal/response"
	"notiguard/internal/routing"
	"notiguard/internal/stats"
)

// NoticeStore reads the notice corpus.
type NoticeStore interface {
	RecentNotices(ctx context.Context, limit int) ([]models.Notice, error)
	SearchNotices(ctx context.Context, keyword string, limit int) ([]models.Notice, error)
}

// ChatLogger appends exchange records.
type ChatLogger interface {
	AppendChatLog(ctx context.Context, entry *models.ChatLog) error
}

// KeywordSource yields the keyword projection of the chat log.
type KeywordSource interface {
	ListKeywordRows(ctx context.Context) ([]models.KeywordLogRow, error)
}

// PopupSource exposes the popups pending for an employee.
type PopupSource interface {
	LatestUnacknowledgedPopup(ctx context.Context, employeeID string) (*models.PopupSummary, error)
	AcknowledgePopup(ctx context.Context, employeeID string, popupID int64) error
}

// Store is everything the assistant reads from or writes to storage.
type Store interface {
	NoticeStore
	ChatLogger
	KeywordSource
	PopupSource
}

// Options tunes the pipeline. Zero values take defaults.
type Options struct {
	NoticeLimit int
	BodyLimit   int
	Router      *routing.Router
}

// Assistant answers employee questions about company notices.
type Assistant struct {
	store       Store
	completer   completion.Completer
	router      *routing.Router
	noticeLimit int
	bodyLimit   int
}

// New creates an assistant.
func New(store Store, completer completion.Completer, opts Options) *Assistant {
	if opts.NoticeLimit <= 0 {
		opts.NoticeLimit = prompt.DefaultNoticeLimit
	}
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = prompt.DefaultBodyLimit
	}
	if opts.Router == nil {
		opts.Router = routing.New(nil)
	}
	return &Assistant{
		store:       store,
		completer:   completer,
		router:      opts.Router,
		noticeLimit: opts.NoticeLimit,
		bodyLimit:   opts.BodyLimit,
	}
}

// Ask answers one question. The request is detached from caller cancellation
// so the completion call and the log write run to completion. Only a notice
// store failure is returned as an error; completion failures come back as
// MISSING answers.
func (a *Assistant) Ask(ctx context.Context, req models.QueryRequest) (*models.QueryResult, error) {
	ctx = context.WithoutCancel(ctx)

	notices, err := a.store.RecentNotices(ctx, a.noticeLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load notices: %w", err)
	}

	text := prompt.Build(req.Question, prompt.BuildContext(notices, a.bodyLimit), a.audience(ctx, req.Requester))
	raw := a.completer.Complete(ctx, text)
	kind := response.Classify(raw)

	kws := keywords.Extract(req.Question)
	refs := references.Resolve(ctx, raw, kind, notices, a.store.SearchNotices, kws)

	ids := make([]int64, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.NoticeID)
	}
	if refs == nil {
		refs = []models.Reference{}
	}
	if kws == nil {
		kws = []string{}
	}

	result := &models.QueryResult{
		Answer:       response.Clean(raw),
		Kind:         kind,
		ReferenceIDs: ids,
		References:   refs,
		Keywords:     kws,
		Label:        keywords.Label(req.Question),
	}

	entry := &models.ChatLog{
		EmployeeID:   req.Requester.EmployeeID,
		Question:     req.Question,
		Answer:       raw,
		Kind:         kind,
		Label:        result.Label,
		ReferenceIDs: ids,
		Keywords:     kws,
	}
	if err := a.store.AppendChatLog(ctx, entry); err != nil {
		slog.Error("failed to append chat log", "employee_id", entry.EmployeeID, "error", err)
	}

	metrics.RecordResponse(kind)
	return result, nil
}

// audience picks the prompt variant. Admins get the top aggregate keywords;
// if they cannot be loaded the regular prompt is used.
func (a *Assistant) audience(ctx context.Context, requester models.Employee) prompt.Audience {
	if !requester.IsAdmin() {
		return prompt.Employee{}
	}

	rows, err := a.store.ListKeywordRows(ctx)
	if err != nil {
		slog.Warn("failed to load keyword stats for admin prompt", "error", err)
		return prompt.Employee{}
	}
	top := stats.Top(stats.Aggregate(rows)[stats.TeamAll], prompt.MaxAdminKeywords)
	return prompt.Administrator{TopKeywords: top}
}

// RefineForDepartment polishes an inquiry draft with the completion service.
// Any failure or a blank result yields FallbackLetter.
func (a *Assistant) RefineForDepartment(ctx context.Context, department, question, draft string) string {
	raw := a.completer.Complete(context.WithoutCancel(ctx), prompt.BuildEmailRefinement(department, question, draft))
	if response.Classify(raw) == models.KindMissing {
		return FallbackLetter(department, question, draft)
	}
	refined := response.Clean(raw)
	if strings.TrimSpace(refined) == "" {
		return FallbackLetter(department, question, draft)
	}
	return refined
}

// FallbackLetter is the deterministic inquiry letter used when refinement
// fails.
func FallbackLetter(department, question, draft string) string {
	return fmt.Sprintf("안녕하십니까, %s 담당자님.\n효성전기 직원입니다.\n\n다음과 같은 내용으로 문의드립니다:\n\n%s\n\n%s\n\n확인 부탁드립니다.\n감사합니다.",
		department, question, draft)
}

// DetectDepartment suggests the department an inquiry should go to.
func (a *Assistant) DetectDepartment(question string) string {
	return a.router.Detect(question)
}

// CanReceiveInquiries reports whether department is in the directory.
func (a *Assistant) CanReceiveInquiries(department string) bool {
	return a.router.Eligible(department)
}

// LatestPopup returns the newest popup the employee has not responded to, or
// nil.
func (a *Assistant) LatestPopup(ctx context.Context, employeeID string) (*models.PopupSummary, error) {
	return a.store.LatestUnacknowledgedPopup(ctx, employeeID)
}

// AcknowledgePopup records that the employee confirmed a popup from chat.
func (a *Assistant) AcknowledgePopup(ctx context.Context, employeeID string, popupID int64) error {
	return a.store.AcknowledgePopup(ctx, employeeID, popupID)
}
