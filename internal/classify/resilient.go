package classify

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// ResilientClassifier wraps the LLM classifier with a circuit breaker and a
// deterministic fallback. It never returns an error: when the provider is
// down, rate limited, or the breaker is open, the keyword classifier answers.
type ResilientClassifier struct {
	primary  port.DocumentClassifier
	fallback port.DocumentClassifier
	breaker  *gobreaker.CircuitBreaker[*domain.NoticeAnalysis]
}

// NewResilientClassifier wires primary behind a circuit breaker with the
// keyword fallback as the degraded path.
func NewResilientClassifier(primary port.DocumentClassifier) *ResilientClassifier {
	settings := gobreaker.Settings{
		Name:    "document-classifier",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("classify.ResilientClassifier: breaker %s %s -> %s", name, from, to)
		},
	}
	return &ResilientClassifier{
		primary:  primary,
		fallback: NewFallbackClassifier(),
		breaker:  gobreaker.NewCircuitBreaker[*domain.NoticeAnalysis](settings),
	}
}

func (r *ResilientClassifier) Classify(ctx context.Context, input port.ClassifyInput) (*domain.NoticeAnalysis, error) {
	analysis, err := r.breaker.Execute(func() (*domain.NoticeAnalysis, error) {
		return r.primary.Classify(ctx, input)
	})
	if err != nil {
		log.Printf("classify.ResilientClassifier: provider classification failed for %s, using keyword fallback: %v", input.FileName, err)
		return r.fallback.Classify(ctx, input)
	}
	return analysis, nil
}
