package ownership

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/cache"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/store"
)

func (s *service) GetOwnership(ctx context.Context, assetID string) (*domain.OwnershipRecord, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.OwnershipKey(assetID), s.config.CacheTTL,
		func(ctx context.Context) (*domain.OwnershipRecord, error) {
			rec, err := s.store.GetOwnership(ctx, assetID)
			if err != nil {
				return nil, domain.AsDomainError("get ownership", err)
			}
			if rec == nil {
				return nil, domain.NewError(domain.KindOwnershipNotFound, assetID)
			}
			return rec, nil
		})
}

func (s *service) GetOwnershipHistory(ctx context.Context, assetID string) ([]domain.PreviousOwner, error) {
	rec, err := s.GetOwnership(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if rec.PreviousOwners == nil {
		return []domain.PreviousOwner{}, nil
	}
	return rec.PreviousOwners, nil
}

func (s *service) CanEdit(ctx context.Context, assetID, userID string) (bool, error) {
	rec, err := s.GetOwnership(ctx, assetID)
	if errors.Is(err, domain.ErrOwnershipNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.IsOwnedBy(userID), nil
}

func (s *service) DirectClaim(ctx context.Context, assetID string, user domain.User) (*domain.OwnershipRecord, error) {
	caller, err := identity.RequireUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if user.Name == "" {
		user.Name = caller.Name
	}
	if user.Email == "" {
		user.Email = caller.Email
	}
	return s.directClaim(ctx, assetID, user)
}

// directClaim assigns a missing or unclaimed record to user
func (s *service) directClaim(ctx context.Context, assetID string, user domain.User) (*domain.OwnershipRecord, error) {
	if assetID == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "asset id is required")
	}

	var result *domain.OwnershipRecord
	var denied []domain.Claim
	err := s.commit(ctx, assetID, func(uow store.UnitOfWork) error {
		now := s.clock.Now()

		rec, err := uow.GetOwnershipForUpdate(ctx, assetID)
		if err != nil {
			return err
		}

		if rec == nil {
			rec = &domain.OwnershipRecord{
				AssetID:        assetID,
				PreviousOwners: []domain.PreviousOwner{},
			}
			rec.AssignOwner(user, now)
			if err := uow.InsertOwnership(ctx, rec); err != nil {
				return err
			}
			result = rec
			return nil
		}

		if rec.Status == domain.OwnershipStatusOwned {
			return domain.ErrAlreadyOwned
		}

		rec.AssignOwner(user, now)
		if err := uow.UpdateOwnership(ctx, rec); err != nil {
			return err
		}
		denied, err = denyClaimsOf(ctx, uow, assetID, user.ID, user.ID, now)
		if err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Asset claimed directly",
		zap.String("asset_id", assetID),
		zap.String("user_id", user.ID),
		zap.Int("denied", len(denied)))

	s.publisher.Publish(ctx, domain.OwnershipClaimed{
		AssetID:  assetID,
		UserID:   user.ID,
		UserName: user.Name,
	})
	s.publisher.Publish(ctx, deniedEvents(denied)...)

	return result, nil
}

func (s *service) TransferOwnership(ctx context.Context, assetID, fromUserID string, to domain.User) (*domain.OwnershipRecord, error) {
	if _, err := identity.RequireUser(ctx, fromUserID); err != nil {
		return nil, err
	}
	if to.ID == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "recipient is required")
	}
	if to.ID == fromUserID {
		return nil, domain.NewError(domain.KindInvalidArgument, "cannot transfer to the current owner")
	}

	var result *domain.OwnershipRecord
	var denied []domain.Claim
	err := s.commit(ctx, assetID, func(uow store.UnitOfWork) error {
		now := s.clock.Now()

		rec, err := uow.GetOwnershipForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.NewError(domain.KindOwnershipNotFound, assetID)
		}
		if !rec.IsOwnedBy(fromUserID) {
			return domain.ErrNotOwner
		}

		rec.AppendPreviousOwner(domain.OwnershipActionTransferred, now)
		rec.AssignOwner(to, now)
		if err := uow.UpdateOwnership(ctx, rec); err != nil {
			return err
		}
		denied, err = denyClaimsOf(ctx, uow, assetID, to.ID, fromUserID, now)
		if err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Ownership transferred",
		zap.String("asset_id", assetID),
		zap.String("from_user_id", fromUserID),
		zap.String("to_user_id", to.ID),
		zap.Int("denied", len(denied)))

	from := fromUserID
	s.publisher.Publish(ctx, domain.OwnershipTransferred{
		AssetID:    assetID,
		FromUserID: &from,
		ToUserID:   to.ID,
		ToUserName: to.Name,
	})
	s.publisher.Publish(ctx, deniedEvents(denied)...)

	return result, nil
}

func (s *service) ReleaseOwnership(ctx context.Context, assetID, userID string) (*domain.OwnershipRecord, error) {
	if _, err := identity.RequireUser(ctx, userID); err != nil {
		return nil, err
	}

	var result *domain.OwnershipRecord
	err := s.commit(ctx, assetID, func(uow store.UnitOfWork) error {
		now := s.clock.Now()

		rec, err := uow.GetOwnershipForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.NewError(domain.KindOwnershipNotFound, assetID)
		}
		if !rec.IsOwnedBy(userID) {
			return domain.ErrNotOwner
		}

		rec.AppendPreviousOwner(domain.OwnershipActionReleased, now)
		rec.Release(now)
		if err := uow.UpdateOwnership(ctx, rec); err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Ownership released",
		zap.String("asset_id", assetID),
		zap.String("user_id", userID))

	s.publisher.Publish(ctx, domain.OwnershipReleased{
		AssetID:         assetID,
		PreviousOwnerID: userID,
	})

	return result, nil
}
