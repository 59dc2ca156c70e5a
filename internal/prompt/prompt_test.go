package prompt

import (
	"strings"
	"testing"
	"time"

	"notiguard/internal/models"
	"notiguard/internal/response"
	"notiguard/internal/stats"
)

func TestBuild_EmployeeHasNoAdminBlock(t *testing.T) {
	got := Build("휴가 규정 알려줘", "[공지 1]\n제목: 휴가 규정", Employee{})

	if strings.Contains(got, "관리자 모드") {
		t.Error("employee prompt contains the administrator block")
	}
	for _, want := range []string{
		response.MissingSentinel,
		response.IrrelevantSentinel,
		"휴가 규정 알려줘",
		"[공지 1]",
		"---",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuild_AdministratorListsTopKeywords(t *testing.T) {
	top := []stats.TermCount{{Term: "안전교육", Count: 7}, {Term: "급여", Count: 3}}
	got := Build("자주 묻는 질문은?", NoNoticesText, Administrator{TopKeywords: top})

	if !strings.Contains(got, "관리자 모드") {
		t.Fatal("administrator prompt is missing the administrator block")
	}
	if !strings.Contains(got, "안전교육 (7회), 급여 (3회)") {
		t.Errorf("administrator block does not list keywords in order:\n%s", got)
	}
}

func TestBuild_AdministratorCapsKeywords(t *testing.T) {
	var top []stats.TermCount
	for i := 0; i < 15; i++ {
		top = append(top, stats.TermCount{Term: "키워드" + string(rune('가'+i)), Count: 15 - i})
	}
	got := Build("q", NoNoticesText, Administrator{TopKeywords: top})

	if n := strings.Count(got, "회)"); n != MaxAdminKeywords {
		t.Errorf("administrator block lists %d keywords, want %d", n, MaxAdminKeywords)
	}
}

func TestBuild_AdministratorWithoutKeywords(t *testing.T) {
	got := Build("q", NoNoticesText, Administrator{})
	if strings.Contains(got, "관리자 모드") {
		t.Error("administrator block rendered with no keywords")
	}
}

func TestBuildContext(t *testing.T) {
	notices := []models.Notice{
		{
			ID:            2,
			Title:         "안전교육 안내",
			Body:          "1월 24일 생산동",
			Department:    "생산팀",
			EffectiveDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			Category:      "교육",
		},
		{ID: 1, Title: "휴가 규정", Body: "본문"},
	}

	got := BuildContext(notices, DefaultBodyLimit)
	for _, want := range []string{
		"[공지 1]\n제목: 안전교육 안내\n부서: 생산팀\n날짜: 2025-01-20\n유형: 교육\n내용: 1월 24일 생산동\n",
		"[공지 2]\n제목: 휴가 규정\n부서: 전체\n날짜: \n유형: 일반\n내용: 본문\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildContext() missing record %q in:\n%s", want, got)
		}
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if got := BuildContext(nil, DefaultBodyLimit); got != NoNoticesText {
		t.Errorf("BuildContext(nil) = %q, want %q", got, NoNoticesText)
	}
}

func TestBuildContext_TruncatesBody(t *testing.T) {
	body := strings.Repeat("가", 20)
	got := BuildContext([]models.Notice{{Title: "t", Body: body}}, 10)

	want := "내용: " + strings.Repeat("가", 10) + "...\n"
	if !strings.Contains(got, want) {
		t.Errorf("BuildContext() body not truncated:\n%s", got)
	}
}

func TestBuildEmailRefinement(t *testing.T) {
	got := BuildEmailRefinement("재경팀", "법인카드 한도", "한도 상향 요청드립니다")
	for _, want := range []string{"재경팀 담당자", "법인카드 한도", "한도 상향 요청드립니다"} {
		if !strings.Contains(got, want) {
			t.Errorf("refinement prompt missing %q", want)
		}
	}
}
