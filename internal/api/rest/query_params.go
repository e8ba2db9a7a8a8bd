package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ownership/internal/domain"
)

const (
	MAX_PAGE_SIZE            = 100
	DEFAULT_TOP_CONTRIBUTORS = 10
)

// ListClaimsQueryParams holds query parameters for the claim listings
type ListClaimsQueryParams struct {
	Status string `form:"status"`
}

// ParseListClaimsQuery parses ?status=pending|approved|denied
func ParseListClaimsQuery(c *gin.Context) (*domain.ClaimStatus, error) {
	var params ListClaimsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Status == "" {
		return nil, nil
	}

	status := domain.ClaimStatus(params.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown claim status: %s", params.Status)
	}
	return &status, nil
}

// TopContributorsQueryParams holds query parameters for GET /assets/:asset_id/contributors/top
type TopContributorsQueryParams struct {
	Limit int `form:"limit,default=10"`
}

// ParseTopContributorsQuery parses and caps the ranking limit
func ParseTopContributorsQuery(c *gin.Context) (int, error) {
	params := TopContributorsQueryParams{Limit: DEFAULT_TOP_CONTRIBUTORS}
	if err := c.ShouldBindQuery(&params); err != nil {
		return 0, err
	}
	if params.Limit <= 0 {
		return 0, fmt.Errorf("limit must be positive")
	}
	return min(params.Limit, MAX_PAGE_SIZE), nil
}

// ListContributionsQueryParams holds query parameters for GET /assets/:asset_id/contributions
type ListContributionsQueryParams struct {
	UserID string `form:"user_id"`
}

// ParseListContributionsQuery returns the optional user filter
func ParseListContributionsQuery(c *gin.Context) (*string, error) {
	var params ListContributionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.UserID == "" {
		return nil, nil
	}
	return &params.UserID, nil
}

// CanEditQueryParams holds query parameters for GET /assets/:asset_id/can-edit
type CanEditQueryParams struct {
	UserID string `form:"user_id"`
}
