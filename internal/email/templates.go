package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"notiguard/internal/config"
	"notiguard/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .button:hover { background: #1d4ed8; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .success { color: #059669; }
        .warning { color: #d97706; }
        .error { color: #dc2626; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>%s에서 발송된 메일입니다</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// InquiryReceived generates email for a department when an employee submits an inquiry.
func (t *Templates) InquiryReceived(inq *models.Inquiry) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] %s 문의가 접수되었습니다", t.cfg.SiteTitle, inq.Department)

	sender := senderLabel(inq)

	content := fmt.Sprintf(`
        <p>%s 앞으로 새 문의가 접수되었습니다.</p>

        <div class="info-box">
            <p><span class="label">보낸 사람:</span> %s</p>
            <p><span class="label">원래 질문:</span> %s</p>
            <p><span class="label">접수 시각:</span> %s</p>
        </div>

        <div class="info-box">
            %s
        </div>

        <p style="text-align: center;">
            <a href="%s/admin/inquiries/%s" class="button">문의 확인하기</a>
        </p>
    `,
		html.EscapeString(inq.Department),
		html.EscapeString(sender),
		html.EscapeString(inq.Question),
		formatTime(inq.CreatedAt),
		paragraphs(inq.Content),
		t.cfg.BaseURL,
		inq.ID,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`%s 문의 접수

보낸 사람: %s
원래 질문: %s
접수 시각: %s

%s

확인하기: %s/admin/inquiries/%s

--
%s
%s`,
		inq.Department,
		sender,
		inq.Question,
		formatTime(inq.CreatedAt),
		inq.Content,
		t.cfg.BaseURL,
		inq.ID,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// PendingDigest generates the daily reminder of unanswered inquiries for a department.
func (t *Templates) PendingDigest(department string, inquiries []models.Inquiry) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] 미처리 문의 %d건 (%s)", t.cfg.SiteTitle, len(inquiries), department)

	var rows strings.Builder
	var lines strings.Builder
	for _, inq := range inquiries {
		rows.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td><a href="%s/admin/inquiries/%s">%s</a></td></tr>`,
			formatTime(inq.CreatedAt),
			html.EscapeString(senderLabel(&inq)),
			t.cfg.BaseURL,
			inq.ID,
			html.EscapeString(truncate(inq.Question, 60)),
		))
		lines.WriteString(fmt.Sprintf("- [%s] %s: %s\n", formatTime(inq.CreatedAt), senderLabel(&inq), truncate(inq.Question, 60)))
	}

	content := fmt.Sprintf(`
        <p>%s에 답변을 기다리는 문의가 <span class="warning">%d건</span> 있습니다.</p>

        <div class="info-box">
            <table style="width: 100%%; border-collapse: collapse;">
                <tr><th align="left">접수 시각</th><th align="left">보낸 사람</th><th align="left">질문</th></tr>
                %s
            </table>
        </div>

        <p style="text-align: center;">
            <a href="%s/admin/inquiries?status=pending" class="button">전체 문의 보기</a>
        </p>
    `,
		html.EscapeString(department),
		len(inquiries),
		rows.String(),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`%s 미처리 문의 %d건

%s
전체 문의 보기: %s/admin/inquiries?status=pending

--
%s
%s`,
		department,
		len(inquiries),
		lines.String(),
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

func senderLabel(inq *models.Inquiry) string {
	name := inq.EmployeeName
	if name == "" {
		name = "게스트"
	}
	if inq.EmployeeTeam != "" {
		name = fmt.Sprintf("%s (%s)", name, inq.EmployeeTeam)
	}
	if inq.EmployeeID != "" {
		name = fmt.Sprintf("%s, 사번 %s", name, inq.EmployeeID)
	}
	return name
}

// paragraphs escapes text and turns line breaks into <br>.
func paragraphs(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>\n")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
