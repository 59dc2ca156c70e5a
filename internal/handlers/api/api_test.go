package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"notiguard/internal/config"
	"notiguard/internal/db"
	"notiguard/internal/models"
	"notiguard/internal/stats"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
	Mailed bool            `json:"mailed"`
}

func testApp(employee *models.Employee) *fiber.App {
	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		if employee != nil {
			c.Locals("employee", employee)
		}
		return c.Next()
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, r)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, env
}

var testEmployee = &models.Employee{EmployeeID: "E1001", Name: "김철수", Team: "생산팀", Role: models.RoleEmployee}

// --- chat ---

type fakeAssistant struct {
	result  *models.QueryResult
	askErr  error
	asked   models.QueryRequest
	popup   *models.PopupSummary
	ackErr  error
	acked   int64
	refined string
}

func (f *fakeAssistant) Ask(ctx context.Context, req models.QueryRequest) (*models.QueryResult, error) {
	f.asked = req
	return f.result, f.askErr
}

func (f *fakeAssistant) LatestPopup(ctx context.Context, employeeID string) (*models.PopupSummary, error) {
	return f.popup, nil
}

func (f *fakeAssistant) AcknowledgePopup(ctx context.Context, employeeID string, popupID int64) error {
	f.acked = popupID
	return f.ackErr
}

func (f *fakeAssistant) RefineForDepartment(ctx context.Context, department, question, draft string) string {
	return f.refined + "|" + department
}

func (f *fakeAssistant) DetectDepartment(question string) string {
	if strings.Contains(question, "법인카드") {
		return "재경팀"
	}
	return "경영관리본부"
}

func TestChatHandler_Ask(t *testing.T) {
	fa := &fakeAssistant{result: &models.QueryResult{
		Answer:       "안전교육은 3월 4일입니다.",
		Kind:         models.KindNormal,
		ReferenceIDs: []int64{7},
		References:   []models.Reference{{NoticeID: 7, Title: "안전교육 안내"}},
		Keywords:     []string{"안전교육"},
	}}
	app := testApp(testEmployee)
	app.Post("/api/chat", NewChatHandler(fa).Ask)

	status, env := do(t, app, "POST", "/api/chat", `{"question":"  안전교육 언제예요?  "}`)
	if status != fiber.StatusOK || env.Status != "ok" {
		t.Fatalf("status = %d, env = %+v", status, env)
	}
	if fa.asked.Question != "안전교육 언제예요?" || fa.asked.Requester.EmployeeID != "E1001" {
		t.Errorf("asked = %+v", fa.asked)
	}

	var got models.QueryResult
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*fa.result, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestChatHandler_Ask_Errors(t *testing.T) {
	tests := []struct {
		name       string
		employee   *models.Employee
		body       string
		askErr     error
		wantStatus int
	}{
		{"anonymous", nil, `{"question":"q"}`, nil, fiber.StatusUnauthorized},
		{"bad json", testEmployee, `{`, nil, fiber.StatusBadRequest},
		{"blank question", testEmployee, `{"question":"   "}`, nil, fiber.StatusBadRequest},
		{"pipeline failure", testEmployee, `{"question":"연차"}`, errors.New("db down"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(tt.employee)
			app.Post("/api/chat", NewChatHandler(&fakeAssistant{askErr: tt.askErr}).Ask)

			status, env := do(t, app, "POST", "/api/chat", tt.body)
			if status != tt.wantStatus || env.Status != "error" {
				t.Errorf("status = %d (%+v), want %d", status, env, tt.wantStatus)
			}
		})
	}
}

func TestChatHandler_Popup(t *testing.T) {
	fa := &fakeAssistant{}
	app := testApp(testEmployee)
	h := NewChatHandler(fa)
	app.Get("/api/chat/popup", h.Popup)

	_, env := do(t, app, "GET", "/api/chat/popup", "")
	if string(env.Data) != "null" {
		t.Errorf("data = %s, want null", env.Data)
	}

	fa.popup = &models.PopupSummary{ID: 3, Title: "보안 점검 안내"}
	_, env = do(t, app, "GET", "/api/chat/popup", "")
	var got models.PopupSummary
	if err := json.Unmarshal(env.Data, &got); err != nil || got != *fa.popup {
		t.Errorf("popup = %+v (%v), want %+v", got, err, *fa.popup)
	}
}

func TestChatHandler_AcknowledgePopup(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		ackErr     error
		wantStatus int
	}{
		{"ok", "/api/chat/popup/3/ack", nil, fiber.StatusOK},
		{"bad id", "/api/chat/popup/abc/ack", nil, fiber.StatusBadRequest},
		{"unknown popup", "/api/chat/popup/99/ack", db.ErrPopupNotFound, fiber.StatusNotFound},
		{"store failure", "/api/chat/popup/3/ack", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(testEmployee)
			app.Post("/api/chat/popup/:id/ack", NewChatHandler(&fakeAssistant{ackErr: tt.ackErr}).AcknowledgePopup)

			if status, _ := do(t, app, "POST", tt.path, ""); status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
		})
	}
}

// --- departments ---

func TestDepartmentHandler_Detect(t *testing.T) {
	app := testApp(testEmployee)
	app.Get("/api/departments/detect", NewDepartmentHandler(&fakeAssistant{}, config.DefaultDepartments()).Detect)

	tests := []struct {
		q    string
		want map[string]string
	}{
		{"법인카드 한도", map[string]string{"department": "재경팀", "division": "경영관리본부"}},
		{"점심 메뉴", map[string]string{"department": "경영관리본부", "division": "경영관리본부"}},
	}
	for _, tt := range tests {
		status, env := do(t, app, "GET", "/api/departments/detect?q="+url.QueryEscape(tt.q), "")
		if status != fiber.StatusOK {
			t.Fatalf("status = %d", status)
		}
		var got map[string]string
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("decode %s: %v", env.Data, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Detect(%q) mismatch (-want +got):\n%s", tt.q, diff)
		}
	}

	if status, _ := do(t, app, "GET", "/api/departments/detect", ""); status != fiber.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", status)
	}
}

// --- notices ---

type fakeNotices map[int64]*models.Notice

func (f fakeNotices) GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error) {
	if id == 500 {
		return nil, errors.New("boom")
	}
	if n, ok := f[id]; ok {
		return n, nil
	}
	return nil, db.ErrNoticeNotFound
}

func TestNoticeHandler_Get(t *testing.T) {
	store := fakeNotices{7: {ID: 7, Title: "안전교육 안내", Department: "생산팀"}}

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTitle  string
	}{
		{"found", "/api/notices/7", fiber.StatusOK, "안전교육 안내"},
		{"bad id", "/api/notices/abc", fiber.StatusBadRequest, ""},
		{"zero id", "/api/notices/0", fiber.StatusBadRequest, ""},
		{"unknown", "/api/notices/8", fiber.StatusNotFound, ""},
		{"store failure", "/api/notices/500", fiber.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(testEmployee)
			app.Get("/api/notices/:id", NewNoticeHandler(store).Get)

			status, env := do(t, app, "GET", tt.path, "")
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantTitle == "" {
				return
			}
			var got models.Notice
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatalf("decode %s: %v", env.Data, err)
			}
			if got.ID != 7 || got.Title != tt.wantTitle {
				t.Errorf("notice = %+v", got)
			}
		})
	}
}

// --- inquiries ---

type fakeInquiries struct {
	created   []*models.Inquiry
	createErr error
	byID      map[uuid.UUID]*models.Inquiry
	filter    db.InquiryFilter
	updated   string
}

func (f *fakeInquiries) CreateInquiry(ctx context.Context, inq *models.Inquiry) error {
	if f.createErr != nil {
		return f.createErr
	}
	inq.ID = uuid.New()
	inq.Status = models.InquiryPending
	inq.CreatedAt = time.Now()
	f.created = append(f.created, inq)
	return nil
}

func (f *fakeInquiries) GetInquiryByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	if inq, ok := f.byID[id]; ok {
		return inq, nil
	}
	return nil, db.ErrInquiryNotFound
}

func (f *fakeInquiries) ListInquiries(ctx context.Context, filter db.InquiryFilter) ([]models.Inquiry, error) {
	f.filter = filter
	return nil, nil
}

func (f *fakeInquiries) UpdateInquiryStatus(ctx context.Context, id uuid.UUID, status string) error {
	if _, ok := f.byID[id]; !ok {
		return db.ErrInquiryNotFound
	}
	f.updated = status
	return nil
}

type fakeNotifier struct{ notified []*models.Inquiry }

func (f *fakeNotifier) NotifyInquiryCreated(inq *models.Inquiry) bool {
	f.notified = append(f.notified, inq)
	return true
}

func TestInquiryHandler_Refine(t *testing.T) {
	app := testApp(testEmployee)
	h := NewInquiryHandler(&fakeInquiries{}, &fakeAssistant{refined: "정중한 문의"}, nil, config.DefaultDepartments())
	app.Post("/api/inquiries/refine", h.Refine)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDept   string
	}{
		{"explicit department", `{"department":"품질팀","question":"검사 기준","draft":"알려주세요"}`, fiber.StatusOK, "품질팀"},
		{"detected department", `{"question":"법인카드 한도","draft":"알려주세요"}`, fiber.StatusOK, "재경팀"},
		{"unknown department", `{"department":"마케팅팀","question":"q"}`, fiber.StatusBadRequest, ""},
		{"missing question", `{"department":"품질팀"}`, fiber.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, app, "POST", "/api/inquiries/refine", tt.body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d (%+v), want %d", status, env, tt.wantStatus)
			}
			if tt.wantDept == "" {
				return
			}
			var got map[string]string
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatal(err)
			}
			if got["department"] != tt.wantDept || got["content"] != "정중한 문의|"+tt.wantDept {
				t.Errorf("data = %v", got)
			}
		})
	}
}

func TestInquiryHandler_Create(t *testing.T) {
	store := &fakeInquiries{}
	notifier := &fakeNotifier{}
	app := testApp(testEmployee)
	app.Post("/api/inquiries", NewInquiryHandler(store, &fakeAssistant{}, notifier, config.DefaultDepartments()).Create)

	status, env := do(t, app, "POST", "/api/inquiries", `{"department":"재경팀","question":"급여일","content":"급여일이 언제인가요?"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d (%+v), want 201", status, env)
	}
	if !env.Mailed {
		t.Error("mailed = false, want true")
	}
	if len(store.created) != 1 || len(notifier.notified) != 1 {
		t.Fatalf("created %d, notified %d", len(store.created), len(notifier.notified))
	}

	inq := store.created[0]
	if inq.EmployeeID != "E1001" || inq.EmployeeName != "김철수" || inq.EmployeeTeam != "생산팀" {
		t.Errorf("inquiry sender = %+v", inq)
	}
	if inq.Status != models.InquiryPending {
		t.Errorf("status = %q, want pending", inq.Status)
	}
}

func TestInquiryHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		employee   *models.Employee
		body       string
		createErr  error
		wantStatus int
	}{
		{"anonymous", nil, `{"department":"재경팀","content":"c"}`, nil, fiber.StatusUnauthorized},
		{"empty content", testEmployee, `{"department":"재경팀","content":" "}`, nil, fiber.StatusBadRequest},
		{"unknown department", testEmployee, `{"department":"없는팀","content":"c"}`, nil, fiber.StatusBadRequest},
		{"store failure", testEmployee, `{"department":"재경팀","content":"c"}`, errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			app := testApp(tt.employee)
			app.Post("/api/inquiries", NewInquiryHandler(&fakeInquiries{createErr: tt.createErr}, &fakeAssistant{}, notifier, config.DefaultDepartments()).Create)

			if status, _ := do(t, app, "POST", "/api/inquiries", tt.body); status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if len(notifier.notified) != 0 {
				t.Error("notifier called for a failed request")
			}
		})
	}
}

func TestInquiryHandler_Admin(t *testing.T) {
	id := uuid.New()
	store := &fakeInquiries{byID: map[uuid.UUID]*models.Inquiry{
		id: {ID: id, Department: "품질팀", Status: models.InquiryPending},
	}}
	h := NewInquiryHandler(store, &fakeAssistant{}, nil, nil)
	app := testApp(testEmployee)
	app.Get("/api/admin/inquiries", h.List)
	app.Get("/api/admin/inquiries/:id", h.Get)
	app.Post("/api/admin/inquiries/:id/status", h.UpdateStatus)

	status, env := do(t, app, "GET", "/api/admin/inquiries?status=pending&department="+url.QueryEscape("품질팀"), "")
	if status != fiber.StatusOK || string(env.Data) != "[]" {
		t.Errorf("list = %d %s", status, env.Data)
	}
	if store.filter.Status != "pending" || store.filter.Department != "품질팀" || store.filter.Limit != 100 {
		t.Errorf("filter = %+v", store.filter)
	}

	if status, _ := do(t, app, "GET", "/api/admin/inquiries?status=done", ""); status != fiber.StatusBadRequest {
		t.Errorf("invalid status filter = %d, want 400", status)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"get", "GET", "/api/admin/inquiries/" + id.String(), "", fiber.StatusOK},
		{"get bad id", "GET", "/api/admin/inquiries/nope", "", fiber.StatusBadRequest},
		{"get unknown", "GET", "/api/admin/inquiries/" + uuid.NewString(), "", fiber.StatusNotFound},
		{"complete", "POST", "/api/admin/inquiries/" + id.String() + "/status", `{"status":"completed"}`, fiber.StatusOK},
		{"invalid status", "POST", "/api/admin/inquiries/" + id.String() + "/status", `{"status":"closed"}`, fiber.StatusBadRequest},
		{"update unknown", "POST", "/api/admin/inquiries/" + uuid.NewString() + "/status", `{"status":"completed"}`, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, env := do(t, app, tt.method, tt.path, tt.body); status != tt.wantStatus {
				t.Errorf("status = %d (%+v), want %d", status, env, tt.wantStatus)
			}
		})
	}
	if store.updated != models.InquiryCompleted {
		t.Errorf("updated = %q, want completed", store.updated)
	}
}

// --- stats ---

type fakeStats struct {
	rows []models.KeywordLogRow
	err  error
}

func (f *fakeStats) ListKeywordRows(ctx context.Context) ([]models.KeywordLogRow, error) {
	return f.rows, f.err
}

func (f *fakeStats) CountChatLogs(ctx context.Context) (map[models.ResponseKind]int, error) {
	return map[models.ResponseKind]int{models.KindNormal: len(f.rows)}, f.err
}

func TestStatsHandler_KeywordStats(t *testing.T) {
	store := &fakeStats{rows: []models.KeywordLogRow{
		{Team: "생산팀", Keywords: `["학교를", "연차"]`},
		{Team: "생산팀", Keywords: `["학교"]`},
		{Team: "", Keywords: `["연차"]`},
		{Team: "품질팀", Keywords: `["검사"]`},
	}}
	app := testApp(testEmployee)
	app.Get("/api/admin/keyword-stats", NewStatsHandler(store).KeywordStats)

	tests := []struct {
		name  string
		query string
		want  KeywordReport
	}{
		{
			name: "all teams",
			want: KeywordReport{
				Team:      "ALL",
				Teams:     []string{"UNASSIGNED", "생산팀", "품질팀"},
				Keywords:  []stats.TermCount{{Term: "연차", Count: 2}, {Term: "학교", Count: 2}, {Term: "검사", Count: 1}},
				Responses: map[models.ResponseKind]int{models.KindNormal: 4},
			},
		},
		{
			name:  "one team with limit",
			query: "?team=" + url.QueryEscape("생산팀") + "&limit=1",
			want: KeywordReport{
				Team:      "생산팀",
				Teams:     []string{"UNASSIGNED", "생산팀", "품질팀"},
				Keywords:  []stats.TermCount{{Term: "학교", Count: 2}},
				Responses: map[models.ResponseKind]int{models.KindNormal: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, app, "GET", "/api/admin/keyword-stats"+tt.query, "")
			if status != fiber.StatusOK {
				t.Fatalf("status = %d", status)
			}
			var got KeywordReport
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("report mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStatsHandler_KeywordStats_Error(t *testing.T) {
	app := testApp(testEmployee)
	app.Get("/api/admin/keyword-stats", NewStatsHandler(&fakeStats{err: errors.New("boom")}).KeywordStats)

	if status, _ := do(t, app, "GET", "/api/admin/keyword-stats", ""); status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
}
