package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/feral-file/ff-ownership/internal/domain"
)

// memoryStore is an in-process Store used for local development and tests.
// Transactions are serialized by a single write lock and applied on commit.
type memoryStore struct {
	mu            sync.RWMutex
	ownership     map[string]*domain.OwnershipRecord
	claims        map[string]*domain.Claim
	claimOrder    []string
	contributions []domain.Contribution
}

type memoryUnitOfWork struct {
	store     *memoryStore
	ownership map[string]*domain.OwnershipRecord
	claims    map[string]*domain.Claim
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		ownership: make(map[string]*domain.OwnershipRecord),
		claims:    make(map[string]*domain.Claim),
	}
}

func (s *memoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *memoryStore) GetOwnership(ctx context.Context, assetID string) (*domain.OwnershipRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ownership[assetID].Clone(), nil
}

func (s *memoryStore) TouchLastActivity(ctx context.Context, assetID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.ownership[assetID]
	if ok && record.LastActivity.Before(at) {
		record.LastActivity = at
	}
	return nil
}

func (s *memoryStore) ListUnclaimedWithPendingClaims(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	contested := make(map[string]bool)
	for _, c := range s.claims {
		if c.Status == domain.ClaimStatusPending {
			contested[c.AssetID] = true
		}
	}
	records := make([]*domain.OwnershipRecord, 0)
	for _, r := range s.ownership {
		if r.Status == domain.OwnershipStatusUnclaimed && r.UnclaimedSince != nil && r.UnclaimedSince.Before(cutoff) && contested[r.AssetID] {
			records = append(records, r.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(records, func(a, b *domain.OwnershipRecord) int {
		if c := a.UnclaimedSince.Compare(*b.UnclaimedSince); c != 0 {
			return c
		}
		if a.AssetID < b.AssetID {
			return -1
		}
		if a.AssetID > b.AssetID {
			return 1
		}
		return 0
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	assetIDs := make([]string, 0, len(records))
	for _, r := range records {
		assetIDs = append(assetIDs, r.AssetID)
	}
	return assetIDs, nil
}

func (s *memoryStore) GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[claimID]
	if !ok || claim.AssetID != assetID {
		return nil, nil
	}
	c := *claim
	return &c, nil
}

func (s *memoryStore) ListClaims(ctx context.Context, filter ClaimFilter) ([]domain.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := make([]domain.Claim, 0)
	for _, id := range s.claimOrder {
		claim := s.claims[id]
		if filter.AssetID != nil && claim.AssetID != *filter.AssetID {
			continue
		}
		if filter.UserID != nil && claim.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && claim.Status != *filter.Status {
			continue
		}
		claims = append(claims, *claim)
	}
	return claims, nil
}

func (s *memoryStore) CreateClaim(ctx context.Context, claim *domain.Claim) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if claim.Status == domain.ClaimStatusPending {
		for _, existing := range s.claims {
			if existing.AssetID == claim.AssetID &&
				existing.UserID == claim.UserID &&
				existing.Status == domain.ClaimStatusPending {
				return domain.NewError(domain.KindDuplicatePendingClaim, "pending claim already exists for user")
			}
		}
	}

	c := *claim
	s.claims[c.ID] = &c
	s.claimOrder = append(s.claimOrder, c.ID)
	return nil
}

func (s *memoryStore) AppendContribution(ctx context.Context, contribution *domain.Contribution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.contributions = append(s.contributions, *contribution)
	return nil
}

func (s *memoryStore) ListContributions(ctx context.Context, filter ContributionFilter) ([]domain.Contribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	contributions := make([]domain.Contribution, 0)
	for _, c := range s.contributions {
		if c.AssetID != filter.AssetID {
			continue
		}
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

func (s *memoryStore) SumContributionWeights(ctx context.Context, assetID, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, c := range s.contributions {
		if c.AssetID == assetID && c.UserID == userID {
			total += c.Weight
		}
	}
	return total, nil
}

func (s *memoryStore) RunInTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uow := &memoryUnitOfWork{
		store:     s,
		ownership: make(map[string]*domain.OwnershipRecord),
		claims:    make(map[string]*domain.Claim),
	}
	if err := fn(uow); err != nil {
		return err
	}

	// Commit staged writes
	for assetID, record := range uow.ownership {
		s.ownership[assetID] = record
	}
	for id, claim := range uow.claims {
		if _, ok := s.claims[id]; !ok {
			s.claimOrder = append(s.claimOrder, id)
		}
		s.claims[id] = claim
	}
	return nil
}

func (u *memoryUnitOfWork) GetOwnershipForUpdate(ctx context.Context, assetID string) (*domain.OwnershipRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if staged, ok := u.ownership[assetID]; ok {
		return staged.Clone(), nil
	}
	return u.store.ownership[assetID].Clone(), nil
}

func (u *memoryUnitOfWork) InsertOwnership(ctx context.Context, record *domain.OwnershipRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, staged := u.ownership[record.AssetID]
	_, committed := u.store.ownership[record.AssetID]
	if staged || committed {
		return domain.NewError(domain.KindAlreadyOwned, "ownership record created concurrently")
	}
	u.ownership[record.AssetID] = record.Clone()
	return nil
}

func (u *memoryUnitOfWork) UpdateOwnership(ctx context.Context, record *domain.OwnershipRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, staged := u.ownership[record.AssetID]
	_, committed := u.store.ownership[record.AssetID]
	if !staged && !committed {
		return domain.NewError(domain.KindStorageError, "ownership record not found")
	}
	u.ownership[record.AssetID] = record.Clone()
	return nil
}

func (u *memoryUnitOfWork) GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	claim, ok := u.claims[claimID]
	if !ok {
		claim, ok = u.store.claims[claimID]
	}
	if !ok || claim.AssetID != assetID {
		return nil, nil
	}
	c := *claim
	return &c, nil
}

func (u *memoryUnitOfWork) ListPendingClaims(ctx context.Context, assetID string) ([]domain.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	claims := make([]domain.Claim, 0)
	for _, id := range u.store.claimOrder {
		claim := u.store.claims[id]
		if staged, ok := u.claims[id]; ok {
			claim = staged
		}
		if claim.AssetID == assetID && claim.Status == domain.ClaimStatusPending {
			claims = append(claims, *claim)
		}
	}
	return claims, nil
}

func (u *memoryUnitOfWork) UpdateClaim(ctx context.Context, claim *domain.Claim) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := u.store.claims[claim.ID]; !ok {
		return domain.NewError(domain.KindStorageError, "claim not found")
	}
	c := *claim
	u.claims[c.ID] = &c
	return nil
}
