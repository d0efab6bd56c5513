// Package matching ranks candidate pods for a participant by semantic
// similarity between the participant's bio and each pod's text.
package matching

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/peerpods-dev/peerpods/internal/embedding"
	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/internal/lifecycle"
	"github.com/peerpods-dev/peerpods/shared/domain"
	"github.com/peerpods-dev/peerpods/shared/logger"
)

// Tunables are the named scoring constants. Raw cosine c in [-1, 1] maps to
// relevance = clamp(round(Offset + Scale*(c+1)), 0, 100). The defaults
// (0, 50) spread the full cosine range across the whole relevance scale.
type Tunables struct {
	RelevanceOffset float64
	RelevanceScale  float64
}

type Engine struct {
	embedder embedding.Embedder
	tunables Tunables
}

func NewEngine(embedder embedding.Embedder, tunables Tunables) *Engine {
	return &Engine{embedder: embedder, tunables: tunables}
}

// Recommend ranks candidates against the participant's bio and returns the
// top n matches, highest relevance first. An empty bio carries no signal and
// yields an empty result, never an error. Adapter failures surface as
// MatchingUnavailable; a wrong ranking is never silently returned.
func (e *Engine) Recommend(ctx context.Context, bio domain.Bio, candidates []domain.PodCandidate, now time.Time, topN int) ([]domain.PodMatch, error) {
	bio = strings.TrimSpace(bio)
	if bio == "" {
		return []domain.PodMatch{}, nil
	}

	pods := filterCandidates(candidates, now)
	if len(pods) == 0 {
		return []domain.PodMatch{}, nil
	}

	bioVector, err := e.embedder.Embed(ctx, bio)
	if err != nil {
		logger.Log.Error("bio embedding failed", "err", err)
		return nil, internal_errors.MatchingUnavailable
	}

	// One batched call regardless of candidate count; order is preserved.
	texts := make([]string, len(pods))
	for i, pod := range pods {
		texts[i] = strings.TrimSpace(pod.Title + " " + pod.Description)
	}
	podVectors, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Log.Error("candidate embedding failed", "err", err, "candidates", len(texts))
		return nil, internal_errors.MatchingUnavailable
	}

	matches := make([]domain.PodMatch, len(pods))
	for i, pod := range pods {
		relevance := 0 // unembeddable text ranks lowest rather than failing the batch
		if texts[i] != "" {
			relevance = e.relevance(Cosine(bioVector, podVectors[i]))
		}
		matches[i] = domain.PodMatch{Pod: pod.Pod, Relevance: relevance}
	}

	// Stable: equal relevance keeps input order, so rankings are reproducible.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Relevance > matches[j].Relevance
	})

	if topN > 0 && topN < len(matches) {
		matches = matches[:topN]
	}
	return matches, nil
}

// filterCandidates keeps only pods worth surfacing as a new opportunity:
// not expired, remaining headroom over the distinct-participant count, and
// for countdown pods a launch still in the future.
func filterCandidates(candidates []domain.PodCandidate, now time.Time) []domain.PodCandidate {
	kept := make([]domain.PodCandidate, 0, len(candidates))
	for _, c := range candidates {
		if lifecycle.StateOf(&c.Pod, now) == domain.PodExpired {
			continue
		}
		remaining := c.MaxMessagesPerDay - c.DistinctParticipants
		if remaining <= 0 {
			continue
		}
		if c.LaunchMode == domain.LaunchCountdown && c.ScheduledLaunchAt != nil && !now.Before(*c.ScheduledLaunchAt) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (e *Engine) relevance(cosine float64) int {
	scaled := math.Round(e.tunables.RelevanceOffset + e.tunables.RelevanceScale*(cosine+1))
	return int(math.Min(100, math.Max(0, scaled)))
}
