package keywords

import (
	"strings"
	"unicode/utf8"
)

// MaxLabelRunes bounds the sidebar label produced by Label.
const MaxLabelRunes = 15

var labelFillers = toSet([]string{
	"알려줘", "알려주세요", "무엇", "어떻게", "언제", "어디서",
	"누가", "왜", "있어", "해줘", "대해", "관련", "안내", "요", "요?",
})

// Label summarizes a question into a short label for conversation lists.
func Label(question string) string {
	question = strings.TrimSpace(question)
	if utf8.RuneCountInString(question) <= MaxLabelRunes {
		return question
	}

	var words []string
	for _, w := range strings.Fields(question) {
		if labelFillers[w] || utf8.RuneCountInString(w) < 2 {
			continue
		}
		words = append(words, w)
		if len(words) == 3 {
			break
		}
	}

	if len(words) == 0 {
		return truncateRunes(question, MaxLabelRunes)
	}
	return truncateRunes(strings.Join(words, " "), MaxLabelRunes)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
