// Package stats aggregates logged question keywords into per-team frequency
// tables.
package stats

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"notiguard/internal/keywords"
	"notiguard/internal/models"
)

// Pseudo-team buckets.
const (
	TeamAll        = "ALL"
	TeamUnassigned = "UNASSIGNED"
)

// TeamKeywordStats maps a team name to its term counts. TeamAll holds the sum
// over every row, including rows counted under TeamUnassigned.
type TeamKeywordStats map[string]map[string]int

// TermCount is one entry of a ranked keyword list.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// particles are stripped from the end of a term, longest first. At most one
// is removed per term.
var particles = []string{
	"에서는", "으로는", "에게서",
	"에서", "으로", "부터", "까지", "에게", "한테", "처럼", "보다", "이나",
	"은", "는", "이", "가", "을", "를", "에", "의", "와", "과", "로", "도", "만",
}

var fillers = []string{
	"공지사항", "내용", "관련된", "있나요", "있어요", "있어", "뭐야", "뭐예요", "어떤",
	"해주세요", "싶어요", "궁금합니다", "부탁", "부탁해",
	"tell", "show", "about", "please",
}

var secondaryStopwords = func() map[string]bool {
	set := make(map[string]bool, len(keywords.Stopwords)+len(fillers))
	for w := range keywords.Stopwords {
		set[w] = true
	}
	for _, w := range fillers {
		set[w] = true
	}
	return set
}()

// Aggregate counts normalized keywords per team. Rows whose keyword column
// does not parse as a JSON string array are skipped.
func Aggregate(rows []models.KeywordLogRow) TeamKeywordStats {
	out := TeamKeywordStats{TeamAll: {}}

	for _, row := range rows {
		var terms []string
		if err := json.Unmarshal([]byte(row.Keywords), &terms); err != nil {
			continue
		}

		team := strings.TrimSpace(row.Team)
		if team == "" {
			team = TeamUnassigned
		}

		for _, raw := range terms {
			term, ok := Normalize(raw)
			if !ok {
				continue
			}
			out[TeamAll][term]++
			if out[team] == nil {
				out[team] = make(map[string]int)
			}
			out[team][term]++
		}
	}
	return out
}

// Normalize reduces a stored keyword to its counted form. It reports false
// when the term should not be counted.
func Normalize(raw string) (string, bool) {
	term := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)

	if utf8.RuneCountInString(term) < 2 || secondaryStopwords[term] {
		return "", false
	}

	for _, p := range particles {
		if !strings.HasSuffix(term, p) {
			continue
		}
		if stem := strings.TrimSuffix(term, p); utf8.RuneCountInString(stem) >= 2 {
			term = stem
		}
		break
	}
	return term, true
}

// Top returns the n most frequent terms, ties broken alphabetically. n <= 0
// returns every term.
func Top(counts map[string]int, n int) []TermCount {
	ranked := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		ranked = append(ranked, TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Teams returns the real team names present in s, sorted.
func (s TeamKeywordStats) Teams() []string {
	teams := make([]string, 0, len(s))
	for team := range s {
		if team != TeamAll {
			teams = append(teams, team)
		}
	}
	sort.Strings(teams)
	return teams
}
