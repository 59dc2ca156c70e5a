package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"notiguard/internal/models"
	"notiguard/internal/stats"
)

// topKeywordsExported bounds the label cardinality of the keyword gauge.
const topKeywordsExported = 50

var (
	// ChatResponses counts answered questions by response kind.
	ChatResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notiguard_chat_responses_total",
		Help: "Total answered questions by response kind",
	}, []string{"kind"})

	// CompletionFailures counts completion calls that produced a failure answer.
	CompletionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notiguard_completion_failures_total",
		Help: "Total failed completion calls by reason",
	}, []string{"reason"})

	// CompletionDuration observes completion call latency per backend.
	CompletionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notiguard_completion_duration_seconds",
		Help:    "Completion call latency",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"provider"})

	// FallbackSearches counts keyword searches issued by reference resolution.
	FallbackSearches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notiguard_reference_fallback_searches_total",
		Help: "Total keyword searches issued to resolve answer references",
	})

	keywordDesc = prometheus.NewDesc(
		"notiguard_question_keywords",
		"Occurrences of a normalized keyword across logged questions",
		[]string{"keyword"},
		nil,
	)
)

// KeywordSource yields the keyword projection of every logged question.
type KeywordSource interface {
	ListKeywordRows(ctx context.Context) ([]models.KeywordLogRow, error)
}

// KeywordCollector is a custom Prometheus collector that aggregates logged
// question keywords from the database on each scrape.
type KeywordCollector struct {
	source KeywordSource
}

// Describe sends the metric descriptor to the channel.
func (c *KeywordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordDesc
}

// Collect aggregates the chat log and emits the most frequent keywords.
func (c *KeywordCollector) Collect(ch chan<- prometheus.Metric) {
	rows, err := c.source.ListKeywordRows(context.Background())
	if err != nil {
		slog.Error("failed to collect keyword metrics", "error", err)
		return
	}
	all := stats.Aggregate(rows)[stats.TeamAll]
	for _, tc := range stats.Top(all, topKeywordsExported) {
		ch <- prometheus.MustNewConstMetric(
			keywordDesc,
			prometheus.GaugeValue,
			float64(tc.Count),
			tc.Term,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(source KeywordSource) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			ChatResponses,
			CompletionFailures,
			CompletionDuration,
			FallbackSearches,
			&KeywordCollector{source: source},
		)
	})
}

// RecordResponse counts one answered question.
func RecordResponse(kind models.ResponseKind) {
	ChatResponses.WithLabelValues(string(kind)).Inc()
}
