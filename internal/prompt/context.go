package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"notiguard/internal/models"
)

// Context defaults.
const (
	DefaultNoticeLimit = 100
	DefaultBodyLimit   = 1500
)

// NoNoticesText stands in for the context block when the corpus is empty.
const NoNoticesText = "현재 등록된 공지사항이 없습니다."

// BuildContext renders notices into the block embedded in the prompt. Bodies
// longer than bodyLimit runes are cut and marked with "...".
func BuildContext(notices []models.Notice, bodyLimit int) string {
	if len(notices) == 0 {
		return NoNoticesText
	}
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}

	parts := make([]string, 0, len(notices))
	for i, n := range notices {
		var b strings.Builder
		fmt.Fprintf(&b, "[공지 %d]\n", i+1)
		fmt.Fprintf(&b, "제목: %s\n", n.Title)
		fmt.Fprintf(&b, "부서: %s\n", orDefault(n.Department, "전체"))
		fmt.Fprintf(&b, "날짜: %s\n", formatDate(n))
		fmt.Fprintf(&b, "유형: %s\n", orDefault(n.Category, "일반"))
		fmt.Fprintf(&b, "내용: %s\n", truncateBody(n.Body, bodyLimit))
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

func truncateBody(body string, limit int) string {
	if utf8.RuneCountInString(body) <= limit {
		return body
	}
	return string([]rune(body)[:limit]) + "..."
}

func formatDate(n models.Notice) string {
	if n.EffectiveDate.IsZero() {
		return ""
	}
	return n.EffectiveDate.Format("2006-01-02")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
