package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/ownership"
)

const (
	DEFAULT_TOP_CONTRIBUTORS = 10
	MAX_TOP_CONTRIBUTORS     = 100
)

// Resolver is the root resolver that holds the ownership service and contribution ledger
type Resolver struct {
	ownership ownership.Service
	ledger    contribution.Ledger
}

// NewResolver creates a new root resolver
func NewResolver(svc ownership.Service, ledger contribution.Ledger) *Resolver {
	return &Resolver{
		ownership: svc,
		ledger:    ledger,
	}
}

// resolve runs the Query field name with its coerced arguments
func (r *Resolver) resolve(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "ownership":
		return r.ownership.GetOwnership(ctx, stringArg(args, "asset_id"))

	case "ownership_history":
		return r.ownership.GetOwnershipHistory(ctx, stringArg(args, "asset_id"))

	case "can_edit":
		userID := stringArg(args, "user_id")
		if userID == "" {
			caller, ok := identity.FromContext(ctx)
			if !ok {
				return nil, domain.NewError(domain.KindInvalidArgument, "user_id is required for anonymous requests")
			}
			userID = caller.ID
		}
		return r.ownership.CanEdit(ctx, stringArg(args, "asset_id"), userID)

	case "claim":
		return r.ownership.GetClaim(ctx, stringArg(args, "asset_id"), stringArg(args, "claim_id"))

	case "claims":
		status, err := statusArg(args)
		if err != nil {
			return nil, err
		}
		claims, err := r.ownership.ListClaims(ctx, stringArg(args, "asset_id"), status)
		return nonNil(claims), err

	case "my_claims":
		caller, err := identity.Require(ctx)
		if err != nil {
			return nil, err
		}
		status, err := statusArg(args)
		if err != nil {
			return nil, err
		}
		claims, err := r.ownership.ListUserClaims(ctx, caller.ID, status)
		return nonNil(claims), err

	case "contributions":
		var userID *string
		if id := stringArg(args, "user_id"); id != "" {
			userID = &id
		}
		contributions, err := r.ledger.ListContributions(ctx, stringArg(args, "asset_id"), userID)
		return nonNil(contributions), err

	case "top_contributors":
		limit, err := intArg(args, "limit", DEFAULT_TOP_CONTRIBUTORS)
		if err != nil {
			return nil, err
		}
		if limit <= 0 {
			return nil, domain.NewError(domain.KindInvalidArgument, "limit must be positive")
		}
		ranking, err := r.ledger.GetTopContributors(ctx, stringArg(args, "asset_id"), min(limit, MAX_TOP_CONTRIBUTORS))
		return nonNil(ranking), err

	case "contribution_score":
		return r.ledger.GetContributionScore(ctx, stringArg(args, "asset_id"), stringArg(args, "user_id"))

	case "contribution_types":
		return r.ledger.ContributionTypes(), nil
	}

	return nil, fmt.Errorf("unknown query field: %s", name)
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func statusArg(args map[string]any) (*domain.ClaimStatus, error) {
	raw := stringArg(args, "status")
	if raw == "" {
		return nil, nil
	}
	status := domain.ClaimStatus(raw)
	if !status.IsValid() {
		return nil, domain.NewError(domain.KindInvalidArgument, "unknown claim status: "+raw)
	}
	return &status, nil
}

// intArg reads an Int argument given either inline or as a JSON variable
func intArg(args map[string]any, name string, fallback int) (int, error) {
	switch v := args[name].(type) {
	case nil:
		return fallback, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, domain.NewError(domain.KindInvalidArgument, fmt.Sprintf("%s must be an integer", name))
		}
		return int(n), nil
	default:
		return 0, domain.NewError(domain.KindInvalidArgument, fmt.Sprintf("%s must be an integer", name))
	}
}

// nonNil keeps empty results encoded as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
