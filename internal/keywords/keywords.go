// Package keywords extracts content keywords from employee questions.
//
// The same keyword list drives the chat log row and the fallback notice search,
// so extraction must stay deterministic: no stemming, no reordering.
package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxKeywords is the maximum number of keywords extracted from one question.
const MaxKeywords = 5

// Stopwords lists particles, generic verbs, greetings, request phrases and
// generic nouns that never carry the topic of a question.
var Stopwords = toSet([]string{
	// particles
	"은", "는", "이", "가", "을", "를", "에", "의", "와", "과", "으로", "로", "에서", "부터", "까지",
	// generic verbs
	"있다", "없다", "이다", "아니다", "하다", "되다", "않다", "같다", "싶다",
	// requests
	"알려줘", "알려주세요", "알려", "주세요", "해주세요", "해줘", "보여줘", "보여주세요",
	// interrogatives
	"무엇", "무엇인가요", "어디", "어디서", "언제", "누구", "어떻게", "왜",
	"궁금해", "궁금해요", "질문", "문의", "사항", "관련", "대한", "대해", "대하여",
	// greetings
	"안녕", "안녕하세요", "반가워", "반갑습니다", "감사", "고마워",
	// generic nouns and fillers
	"공지", "확인", "방법", "좀", "수", "할", "한", "데", "건", "것",
	"저", "나", "너", "우리", "그", "요", "네", "아니요",
	"이번", "저번", "다음", "오늘", "내일", "어제", "지금", "현재",
	// english fillers
	"the", "is", "are", "what", "when", "where", "how", "please", "tell", "me", "about",
})

// Extract returns up to MaxKeywords unique content terms from text, in
// first-seen order.
func Extract(text string) []string {
	var keywords []string
	seen := make(map[string]bool)

	for _, word := range strings.Fields(stripSymbols(text)) {
		if utf8.RuneCountInString(word) <= 1 || Stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// stripSymbols replaces every rune that is not a letter, digit or whitespace
// with a space so "공지사항?" splits as "공지사항".
func stripSymbols(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
