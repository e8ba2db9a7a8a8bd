package contribution

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/cache"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/store"
)

// RecordInput describes a contribution to record
type RecordInput struct {
	Type domain.ContributionType
	// Weight overrides the configured weight of Type when set
	Weight          *int64
	Description     string
	RelatedEntityID *string
}

// Ledger records scored activity per asset and user and ranks contributors
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// RecordContribution appends a contribution by the calling user
	RecordContribution(ctx context.Context, assetID, userID string, input RecordInput) (*domain.Contribution, error)
	// GetContributionScore returns the sum of the user's contribution weights on the asset
	GetContributionScore(ctx context.Context, assetID, userID string) (int64, error)
	// GetTopContributors ranks users by score, a non-positive limit returns every contributor
	GetTopContributors(ctx context.Context, assetID string, limit int) ([]domain.ContributorRank, error)
	// ListContributions lists contributions on an asset in insertion order, optionally for one user
	ListContributions(ctx context.Context, assetID string, userID *string) ([]domain.Contribution, error)
	// ContributionTypes returns the contribution type table with the effective weights
	ContributionTypes() []domain.ContributionTypeInfo
}

// Config holds the ledger settings
type Config struct {
	Weights  domain.ContributionWeights
	CacheTTL time.Duration
}

type ledger struct {
	store     store.Store
	cache     cache.Cache
	publisher events.Publisher
	clock     adapter.Clock
	config    Config
}

// NewLedger creates a contribution ledger
func NewLedger(st store.Store, c cache.Cache, publisher events.Publisher, clock adapter.Clock, cfg Config) Ledger {
	if cfg.Weights == nil {
		cfg.Weights = domain.DefaultContributionWeights()
	}
	return &ledger{
		store:     st,
		cache:     c,
		publisher: publisher,
		clock:     clock,
		config:    cfg,
	}
}

func (l *ledger) RecordContribution(ctx context.Context, assetID, userID string, input RecordInput) (*domain.Contribution, error) {
	caller, err := identity.RequireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if assetID == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "asset id is required")
	}

	weight, ok := l.config.Weights[input.Type]
	if _, known := domain.LookupContributionType(input.Type); !known || !ok {
		return nil, domain.NewError(domain.KindInvalidContributionType, string(input.Type))
	}
	if input.Weight != nil {
		if *input.Weight < 0 {
			return nil, domain.NewError(domain.KindInvalidArgument, "weight must not be negative")
		}
		weight = *input.Weight
	}

	now := l.clock.Now()
	c := &domain.Contribution{
		ID:              uuid.NewString(),
		AssetID:         assetID,
		UserID:          userID,
		UserName:        caller.Name,
		Type:            input.Type,
		Weight:          weight,
		Description:     input.Description,
		RelatedEntityID: input.RelatedEntityID,
		Timestamp:       now,
	}

	if err := l.store.AppendContribution(ctx, c); err != nil {
		return nil, domain.AsDomainError("append contribution", err)
	}

	// The contribution is already durable, a failed activity bump must not make the caller retry
	if err := l.store.TouchLastActivity(ctx, assetID, now); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to touch last activity"),
			zap.String("asset_id", assetID))
	}

	cache.Invalidate(ctx, l.cache,
		cache.ScoreKey(assetID, userID),
		cache.ContributorsKey(assetID),
		cache.OwnershipKey(assetID))

	logger.InfoCtx(ctx, "Contribution recorded",
		zap.String("asset_id", assetID),
		zap.String("user_id", userID),
		zap.String("type", string(input.Type)),
		zap.Int64("weight", weight))

	l.publisher.Publish(ctx, domain.ContributionRecorded{
		AssetID:        assetID,
		ContributionID: c.ID,
		UserID:         userID,
		Type:           input.Type,
		Weight:         weight,
	})

	return c, nil
}

func (l *ledger) GetContributionScore(ctx context.Context, assetID, userID string) (int64, error) {
	return cache.GetOrLoad(ctx, l.cache, cache.ScoreKey(assetID, userID), l.config.CacheTTL,
		func(ctx context.Context) (int64, error) {
			score, err := l.store.SumContributionWeights(ctx, assetID, userID)
			if err != nil {
				return 0, domain.AsDomainError("sum contribution weights", err)
			}
			return score, nil
		})
}

func (l *ledger) GetTopContributors(ctx context.Context, assetID string, limit int) ([]domain.ContributorRank, error) {
	ranking, err := cache.GetOrLoad(ctx, l.cache, cache.ContributorsKey(assetID), l.config.CacheTTL,
		func(ctx context.Context) ([]domain.ContributorRank, error) {
			contributions, err := l.store.ListContributions(store.WithPrimaryReads(ctx), store.ContributionFilter{AssetID: assetID})
			if err != nil {
				return nil, domain.AsDomainError("list contributions", err)
			}
			return Rank(contributions), nil
		})
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

func (l *ledger) ListContributions(ctx context.Context, assetID string, userID *string) ([]domain.Contribution, error) {
	contributions, err := l.store.ListContributions(ctx, store.ContributionFilter{AssetID: assetID, UserID: userID})
	if err != nil {
		return nil, domain.AsDomainError("list contributions", err)
	}
	return contributions, nil
}

func (l *ledger) ContributionTypes() []domain.ContributionTypeInfo {
	types := domain.ContributionTypes()
	for i := range types {
		if w, ok := l.config.Weights[types[i].Type]; ok {
			types[i].DefaultWeight = w
		}
	}
	return types
}

// Rank aggregates contributions by user and orders them by score descending.
// Users with equal scores keep the order in which they first contributed. Ranks start at 1.
func Rank(contributions []domain.Contribution) []domain.ContributorRank {
	index := make(map[string]int)
	ranking := make([]domain.ContributorRank, 0)
	for _, c := range contributions {
		i, ok := index[c.UserID]
		if !ok {
			i = len(ranking)
			index[c.UserID] = i
			ranking = append(ranking, domain.ContributorRank{UserID: c.UserID, UserName: c.UserName})
		}
		ranking[i].Score += c.Weight
	}

	slices.SortStableFunc(ranking, func(a, b domain.ContributorRank) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}
