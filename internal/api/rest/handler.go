package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/ownership"
	"github.com/feral-file/ff-ownership/internal/store"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck reports whether the store is reachable
	// GET /health
	HealthCheck(c *gin.Context)

	// GET /api/v1/assets/:asset_id/ownership
	GetOwnership(c *gin.Context)
	// GET /api/v1/assets/:asset_id/ownership/history
	GetOwnershipHistory(c *gin.Context)
	// GET /api/v1/assets/:asset_id/can-edit?user_id=<id>, defaults to the caller
	CanEdit(c *gin.Context)
	// POST /api/v1/assets/:asset_id/ownership
	DirectClaim(c *gin.Context)
	// POST /api/v1/assets/:asset_id/transfer
	TransferOwnership(c *gin.Context)
	// POST /api/v1/assets/:asset_id/release
	ReleaseOwnership(c *gin.Context)

	// POST /api/v1/assets/:asset_id/claims
	ClaimOwnership(c *gin.Context)
	// GET /api/v1/assets/:asset_id/claims?status=<status>
	ListClaims(c *gin.Context)
	// GET /api/v1/assets/:asset_id/claims/:claim_id
	GetClaim(c *gin.Context)
	// POST /api/v1/assets/:asset_id/claims/:claim_id/approve
	ApproveClaim(c *gin.Context)
	// POST /api/v1/assets/:asset_id/claims/:claim_id/deny
	DenyClaim(c *gin.Context)
	// POST /api/v1/assets/:asset_id/claims/:claim_id/cancel
	CancelClaim(c *gin.Context)
	// GET /api/v1/me/claims?status=<status>
	ListMyClaims(c *gin.Context)

	// POST /api/v1/assets/:asset_id/contributions
	RecordContribution(c *gin.Context)
	// GET /api/v1/assets/:asset_id/contributions?user_id=<id>
	ListContributions(c *gin.Context)
	// GET /api/v1/assets/:asset_id/contributors/top?limit=<n>
	GetTopContributors(c *gin.Context)
	// GET /api/v1/assets/:asset_id/contributors/:user_id/score
	GetContributionScore(c *gin.Context)
	// GET /api/v1/contribution-types
	ListContributionTypes(c *gin.Context)
}

type handler struct {
	ownership ownership.Service
	ledger    contribution.Ledger
	store     store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(svc ownership.Service, ledger contribution.Ledger, st store.Store) Handler {
	return &handler{
		ownership: svc,
		ledger:    ledger,
		store:     st,
	}
}

func (h *handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(c, domain.AsDomainError("ping", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-ownership-api",
	})
}

func (h *handler) GetOwnership(c *gin.Context) {
	assetID := c.Param("asset_id")

	record, err := h.ownership.GetOwnership(c.Request.Context(), assetID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handler) GetOwnershipHistory(c *gin.Context) {
	assetID := c.Param("asset_id")

	history, err := h.ownership.GetOwnershipHistory(c.Request.Context(), assetID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{AssetID: assetID, PreviousOwners: history})
}

func (h *handler) CanEdit(c *gin.Context) {
	assetID := c.Param("asset_id")

	var params CanEditQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	userID := params.UserID
	if userID == "" {
		caller, ok := identity.FromContext(c.Request.Context())
		if !ok {
			respondBadRequest(c, "user_id is required for anonymous requests")
			return
		}
		userID = caller.ID
	}

	canEdit, err := h.ownership.CanEdit(c.Request.Context(), assetID, userID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, CanEditResponse{AssetID: assetID, UserID: userID, CanEdit: canEdit})
}

func (h *handler) DirectClaim(c *gin.Context) {
	assetID := c.Param("asset_id")
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.ownership.DirectClaim(c.Request.Context(), assetID, caller.User())
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handler) TransferOwnership(c *gin.Context) {
	assetID := c.Param("asset_id")
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	record, err := h.ownership.TransferOwnership(c.Request.Context(), assetID, caller.ID, domain.User{
		ID:    req.ToUserID,
		Name:  req.ToUserName,
		Email: req.ToUserEmail,
	})
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handler) ReleaseOwnership(c *gin.Context) {
	assetID := c.Param("asset_id")
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.ownership.ReleaseOwnership(c.Request.Context(), assetID, caller.ID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handler) ClaimOwnership(c *gin.Context) {
	assetID := c.Param("asset_id")
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var req ClaimOwnershipRequest
	// the body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err.Error())
			return
		}
	}

	result, err := h.ownership.ClaimOwnership(c.Request.Context(), assetID, caller.ID, req.Reason)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}

	status := http.StatusCreated
	if result.Direct {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

func (h *handler) ListClaims(c *gin.Context) {
	assetID := c.Param("asset_id")
	status, err := ParseListClaimsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	claims, err := h.ownership.ListClaims(c.Request.Context(), assetID, status)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, ClaimsResponse{Claims: claims})
}

func (h *handler) GetClaim(c *gin.Context) {
	assetID, claimID := c.Param("asset_id"), c.Param("claim_id")

	claim, err := h.ownership.GetClaim(c.Request.Context(), assetID, claimID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID), zap.String("claim_id", claimID))
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *handler) ApproveClaim(c *gin.Context) {
	assetID, claimID := c.Param("asset_id"), c.Param("claim_id")

	claim, err := h.ownership.ApproveClaim(c.Request.Context(), assetID, claimID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID), zap.String("claim_id", claimID))
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *handler) DenyClaim(c *gin.Context) {
	assetID, claimID := c.Param("asset_id"), c.Param("claim_id")

	var req DenyClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err.Error())
			return
		}
	}

	claim, err := h.ownership.DenyClaim(c.Request.Context(), assetID, claimID, req.Reason)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID), zap.String("claim_id", claimID))
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *handler) CancelClaim(c *gin.Context) {
	assetID, claimID := c.Param("asset_id"), c.Param("claim_id")

	claim, err := h.ownership.CancelClaim(c.Request.Context(), assetID, claimID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID), zap.String("claim_id", claimID))
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *handler) ListMyClaims(c *gin.Context) {
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	status, err := ParseListClaimsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	claims, err := h.ownership.ListUserClaims(c.Request.Context(), caller.ID, status)
	if err != nil {
		respondError(c, err, zap.String("user_id", caller.ID))
		return
	}
	c.JSON(http.StatusOK, ClaimsResponse{Claims: claims})
}

func (h *handler) RecordContribution(c *gin.Context) {
	assetID := c.Param("asset_id")
	caller, err := identity.Require(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var req RecordContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	recorded, err := h.ledger.RecordContribution(c.Request.Context(), assetID, caller.ID, contribution.RecordInput{
		Type:            req.Type,
		Weight:          req.Weight,
		Description:     req.Description,
		RelatedEntityID: req.RelatedEntityID,
	})
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusCreated, recorded)
}

func (h *handler) ListContributions(c *gin.Context) {
	assetID := c.Param("asset_id")
	userID, err := ParseListContributionsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	contributions, err := h.ledger.ListContributions(c.Request.Context(), assetID, userID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, ContributionsResponse{Contributions: contributions})
}

func (h *handler) GetTopContributors(c *gin.Context) {
	assetID := c.Param("asset_id")
	limit, err := ParseTopContributorsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ranking, err := h.ledger.GetTopContributors(c.Request.Context(), assetID, limit)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID))
		return
	}
	c.JSON(http.StatusOK, TopContributorsResponse{AssetID: assetID, Contributors: ranking})
}

func (h *handler) GetContributionScore(c *gin.Context) {
	assetID, userID := c.Param("asset_id"), c.Param("user_id")

	score, err := h.ledger.GetContributionScore(c.Request.Context(), assetID, userID)
	if err != nil {
		respondError(c, err, zap.String("asset_id", assetID), zap.String("user_id", userID))
		return
	}
	c.JSON(http.StatusOK, ScoreResponse{AssetID: assetID, UserID: userID, Score: score})
}

func (h *handler) ListContributionTypes(c *gin.Context) {
	c.JSON(http.StatusOK, ContributionTypesResponse{Types: h.ledger.ContributionTypes()})
}
