// Package references decides which notices an answer is about.
package references

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"notiguard/internal/metrics"
	"notiguard/internal/models"
)

// Limits
const (
	MaxReferences      = 3
	MaxFallbackQueries = 2
)

// SearchFunc finds notices matching keyword, most recent first.
type SearchFunc func(ctx context.Context, keyword string, limit int) ([]models.Notice, error)

// Resolve returns up to MaxReferences notices the answer refers to. Notices
// from pool whose title appears verbatim in the answer come first. Only when
// none match and the answer is a NORMAL one are the longest keywords searched.
func Resolve(ctx context.Context, answer string, kind models.ResponseKind, pool []models.Notice, search SearchFunc, keywords []string) []models.Reference {
	var ids []int64
	seen := make(map[int64]bool)

	for _, n := range pool {
		if len(ids) == MaxReferences {
			break
		}
		if strings.TrimSpace(n.Title) == "" || seen[n.ID] {
			continue
		}
		if strings.Contains(answer, n.Title) {
			seen[n.ID] = true
			ids = append(ids, n.ID)
		}
	}

	var fallback []models.Notice
	if len(ids) == 0 && kind == models.KindNormal && search != nil {
		fallback, ids = searchFallback(ctx, search, keywords, seen)
	}

	return lookup(ids, pool, fallback)
}

func searchFallback(ctx context.Context, search SearchFunc, keywords []string, seen map[int64]bool) ([]models.Notice, []int64) {
	ordered := make([]string, len(keywords))
	copy(ordered, keywords)
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i]) > utf8.RuneCountInString(ordered[j])
	})
	if len(ordered) > MaxFallbackQueries {
		ordered = ordered[:MaxFallbackQueries]
	}

	var found []models.Notice
	var ids []int64
	for _, kw := range ordered {
		metrics.FallbackSearches.Inc()
		batch, err := search(ctx, kw, MaxReferences)
		if err != nil {
			slog.Error("fallback notice search failed", "keyword", kw, "error", err)
			continue
		}
		for _, n := range batch {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			found = append(found, n)
			ids = append(ids, n.ID)
		}
		if len(ids) >= MaxReferences {
			break
		}
	}

	if len(ids) > MaxReferences {
		ids = ids[:MaxReferences]
	}
	return found, ids
}

// lookup resolves ids against the union of both pools, first occurrence wins.
func lookup(ids []int64, pools ...[]models.Notice) []models.Reference {
	if len(ids) == 0 {
		return nil
	}

	byID := make(map[int64]models.Notice)
	for _, pool := range pools {
		for _, n := range pool {
			if _, ok := byID[n.ID]; !ok {
				byID[n.ID] = n
			}
		}
	}

	refs := make([]models.Reference, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			refs = append(refs, models.Reference{NoticeID: n.ID, Title: n.Title})
		}
	}
	return refs
}
