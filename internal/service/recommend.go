package service

import (
	"context"
	"strings"

	"github.com/peerpods-dev/peerpods/internal/clock"
	"github.com/peerpods-dev/peerpods/internal/matching"
	"github.com/peerpods-dev/peerpods/shared/domain"
)

type RecommendService interface {
	Recommend(ctx context.Context, user domain.UserId, topN int) ([]domain.PodMatch, error)
}

type Recommend struct {
	users       RecommendUserStorage
	pods        RecommendPodStorage
	engine      *matching.Engine
	clock       clock.Clock
	defaultTopN int
}

type RecommendUserStorage interface {
	GetUser(id domain.UserId) (*domain.User, error)
}

type RecommendPodStorage interface {
	PodCandidatesFor(user domain.UserId) ([]domain.PodCandidate, error)
}

func NewRecommend(users RecommendUserStorage, pods RecommendPodStorage, engine *matching.Engine, clk clock.Clock, defaultTopN int) RecommendService {
	return &Recommend{users, pods, engine, clk, defaultTopN}
}

func (r *Recommend) Recommend(ctx context.Context, userId domain.UserId, topN int) ([]domain.PodMatch, error) {
	if topN <= 0 {
		topN = r.defaultTopN
	}

	user, err := r.users.GetUser(userId)
	if err != nil {
		return nil, err
	}
	// Without a bio there is no signal to rank on; skip the candidate query.
	if strings.TrimSpace(string(user.Bio)) == "" {
		return []domain.PodMatch{}, nil
	}

	candidates, err := r.pods.PodCandidatesFor(userId)
	if err != nil {
		return nil, err
	}

	return r.engine.Recommend(ctx, user.Bio, candidates, r.clock.Now(), topN)
}
