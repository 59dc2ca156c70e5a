// Package prompt assembles completion prompts for the notice assistant.
package prompt

import (
	"fmt"
	"strings"

	"notiguard/internal/response"
	"notiguard/internal/stats"
)

// MaxAdminKeywords is how many aggregate keywords an administrator prompt lists.
const MaxAdminKeywords = 10

// Audience is the closed set of requester variants a prompt can be built for.
type Audience interface {
	audience()
}

// Employee is a regular requester.
type Employee struct{}

// Administrator is a privileged requester. TopKeywords are the most frequent
// keywords across all logged questions, most frequent first.
type Administrator struct {
	TopKeywords []stats.TermCount
}

func (Employee) audience()      {}
func (Administrator) audience() {}

// Build composes the full prompt for one question.
func Build(question, contextText string, audience Audience) string {
	var b strings.Builder

	b.WriteString("당신은 사내 공지사항 안내 챗봇 '노티가드(NotiGuard)'입니다.\n")
	b.WriteString("직원들의 공지사항 관련 질문에 아래 공지사항 데이터베이스만을 근거로 답변합니다.\n")
	b.WriteString("비슷한 공지가 여러 개라면 날짜가 가장 최신인 공지를 우선 안내합니다.\n\n")

	if admin, ok := audience.(Administrator); ok && len(admin.TopKeywords) > 0 {
		b.WriteString(adminBlock(admin.TopKeywords))
	}

	b.WriteString(behaviourRules())
	b.WriteString(formattingRules())

	b.WriteString("**공지사항 데이터베이스:**\n")
	b.WriteString(contextText)
	b.WriteString("\n\n---\n\n")
	b.WriteString("**사용자 질문:**\n")
	b.WriteString(question)
	b.WriteString("\n\n**응답:** 위 공지사항을 참고하여 답변해주세요.")

	return b.String()
}

func adminBlock(top []stats.TermCount) string {
	if len(top) > MaxAdminKeywords {
		top = top[:MaxAdminKeywords]
	}
	items := make([]string, len(top))
	for i, tc := range top {
		items[i] = fmt.Sprintf("%s (%d회)", tc.Term, tc.Count)
	}

	var b strings.Builder
	b.WriteString("**[관리자 모드]**\n")
	b.WriteString("현재 관리자와 대화 중입니다. 직원들이 최근 자주 질문한 키워드 TOP 10:\n")
	b.WriteString(strings.Join(items, ", "))
	b.WriteString("\n관리자가 \"직원들이 자주 묻는 질문\"을 물으면 위 키워드를 보기 좋게 정리해 알려주세요.\n")
	b.WriteString("특정 키워드에 대해 물으면 관련 공지를 찾아 상세히 안내해주세요.\n\n")
	return b.String()
}

func behaviourRules() string {
	return fmt.Sprintf(`**답변 규칙:**
1. 자기소개 질문 ("너는 누구니?", "뭘 할 수 있어?"):
   - 노티가드로 자신을 소개하고 공지 검색, 일정 안내, 부서별 공지 확인 기능을 설명합니다.
   - 바로 따라 할 수 있는 예시 질문을 함께 제시합니다.
2. 공지사항 질문 (정상 답변):
   - 관련 공지의 핵심을 요약해 답합니다. 원문을 그대로 복사하지 않습니다.
   - 답변에 %[1]s 또는 %[2]s 를 포함하지 않습니다.
   - 단순 연락처 안내 문구(내선 번호 등)는 생략합니다.
3. 정보 없음:
   - 관련 공지가 없으면 반드시 "%[1]s"으로 시작합니다.
   - 예: "%[1]s 죄송합니다. [질문 키워드]에 대한 공지사항을 찾을 수 없습니다."
4. 업무 무관 질문 (날씨, 맛집, 게임 등):
   - 반드시 "%[2]s"로 시작합니다.
   - 예: "%[2]s 죄송합니다. 저는 사내 공지사항에 대해서만 답변할 수 있습니다."
   - 이 경우에만 예시 질문을 덧붙입니다.

`, response.MissingSentinel, response.IrrelevantSentinel)
}

func formattingRules() string {
	return `**형식 규칙:**
- 공지가 1개일 때:
  📌 [공지 제목]

  • **일시:** [날짜/시간]
  • **장소:** [장소]
  • **대상:** [대상자]

  **내용:**
  [핵심 요약]

  📋 담당부서: [부서명] | 공지일자: [날짜]
- 공지가 2개 이상일 때 (최대 3개):
  총 [N]개의 공지사항을 찾았습니다:

  ---

  **1. [첫 번째 공지 제목]**

  • **일시:** [날짜/시간]
  • **장소:** [장소]
  • **대상:** [대상자]

  **내용:**
  [핵심 요약]

  ---
- 공지 사이는 반드시 "---"로 구분합니다.
- bullet(•) 항목은 한 줄에 하나만 씁니다. "• 일시: ... • 장소: ..."처럼 한 줄로 이어 쓰지 않습니다.
- 공지 제목은 데이터베이스의 제목을 그대로 씁니다.

`
}

// BuildEmailRefinement is the fixed template asking the model to polish an
// inquiry draft addressed to a department.
func BuildEmailRefinement(department, question, draft string) string {
	return fmt.Sprintf(`당신은 비즈니스 이메일 작성 전문가입니다.

사용자가 %[1]s 담당자에게 다음 질문으로 문의 이메일을 보내려고 합니다.

**원본 질문:** %[2]s

**사용자가 작성한 초안:**
%[3]s

위 내용을 격식 있고 간결한 비즈니스 이메일로 다듬어주세요.
- 존댓말과 정중한 어투
- 인사말과 맺음말 포함
- 불필요한 꾸밈말 제거
- 문단을 명확히 구분

**이메일 형식:**
안녕하십니까, %[1]s 담당자님.

[본문]

확인 부탁드립니다.
감사합니다.
`, department, question, draft)
}
