package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership/internal/api/middleware"
	"github.com/feral-file/ff-ownership/internal/api/rest"
	"github.com/feral-file/ff-ownership/internal/api/server"
	apierrors "github.com/feral-file/ff-ownership/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership/internal/cache"
	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
	"github.com/feral-file/ff-ownership/internal/mocks"
	"github.com/feral-file/ff-ownership/internal/ownership"
	"github.com/feral-file/ff-ownership/internal/ratelimit"
	"github.com/feral-file/ff-ownership/internal/store"
)

const testAPIKey = "test-key"

type testAPI struct {
	router *gin.Engine
}

func setupTestAPI(t *testing.T) *testAPI {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()

	st := store.NewMemoryStore()
	bus := events.NewBus(clock)
	ledger := contribution.NewLedger(st, cache.NewNoop(), bus, clock, contribution.Config{})
	svc := ownership.NewService(st, cache.NewNoop(), ledger, bus, clock, ownership.Config{
		MinContributionScoreForClaim: 5,
	})

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	require.NoError(t, err)

	return &testAPI{router: server.NewRouter(server.Config{}, rest.NewHandler(svc, ledger, st), auth)}
}

// do sends a request as userID, anonymously when userID is empty
func (a *testAPI) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
		req.Header.Set(middleware.HEADER_USER_ID, userID)
		req.Header.Set(middleware.HEADER_USER_NAME, "name-"+userID)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code apierrors.ErrorCode) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	resp := decode[apierrors.Response](t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, code, resp.Error.Code)
}

func (a *testAPI) contribute(t *testing.T, assetID, userID string, weight int64) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/assets/"+assetID+"/contributions", userID, rest.RecordContributionRequest{
		Type:   domain.ContributionTypeMajorEdit,
		Weight: &weight,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestHealthCheck_StoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{})
	require.NoError(t, err)
	router := server.NewRouter(server.Config{}, rest.NewHandler(nil, nil, st), auth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assertError(t, w, http.StatusInternalServerError, apierrors.ErrCodeDatabaseError)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestClaimFlow(t *testing.T) {
	api := setupTestAPI(t)

	// userA takes the free asset directly
	w := api.do(t, http.MethodPost, "/api/v1/assets/myth-42/claims", "userA", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	direct := decode[ownership.ClaimResult](t, w)
	assert.True(t, direct.Direct)
	require.NotNil(t, direct.Ownership)
	assert.Equal(t, "userA", *direct.Ownership.OwnerID)

	// userB earns enough score and files a claim
	api.contribute(t, "myth-42", "userB", 6)
	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-42/claims", "userB", rest.ClaimOwnershipRequest{Reason: "I rewrote it"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	filed := decode[ownership.ClaimResult](t, w)
	require.NotNil(t, filed.Claim)
	claimID := filed.Claim.ID
	assert.Equal(t, domain.ClaimStatusPending, filed.Claim.Status)
	assert.Equal(t, int64(6), filed.Claim.ContributionScoreSnapshot)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-42/claims?status=pending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[rest.ClaimsResponse](t, w).Claims, 1)

	w = api.do(t, http.MethodGet, "/api/v1/me/claims", "userB", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[rest.ClaimsResponse](t, w).Claims, 1)

	// only the owner may resolve
	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-42/claims/"+claimID+"/approve", "userB", nil)
	assertError(t, w, http.StatusForbidden, apierrors.ErrCodeNotOwner)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-42/claims/"+claimID+"/approve", "userA", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.ClaimStatusApproved, decode[domain.Claim](t, w).Status)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-42/ownership", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rec := decode[domain.OwnershipRecord](t, w)
	assert.Equal(t, "userB", *rec.OwnerID)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-42/ownership/history", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[rest.HistoryResponse](t, w)
	require.Len(t, history.PreviousOwners, 1)
	assert.Equal(t, "userA", history.PreviousOwners[0].UserID)
	assert.Equal(t, domain.OwnershipActionClaimApproved, history.PreviousOwners[0].Action)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-42/claims/"+claimID+"/deny", "userB", nil)
	assertError(t, w, http.StatusConflict, apierrors.ErrCodeClaimAlreadyResolved)
}

func TestClaimErrors(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims", "", nil)
	assertError(t, w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims", "userA", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims", "userA", nil)
	assertError(t, w, http.StatusConflict, apierrors.ErrCodeAlreadyOwned)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims", "userB", nil)
	assertError(t, w, http.StatusForbidden, apierrors.ErrCodeInsufficientContributionScore)

	api.contribute(t, "myth-1", "userB", 5)
	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims", "userB", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	claimID := decode[ownership.ClaimResult](t, w).Claim.ID

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims", "userB", nil)
	assertError(t, w, http.StatusConflict, apierrors.ErrCodeDuplicatePendingClaim)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-1/claims/nope", "", nil)
	assertError(t, w, http.StatusNotFound, apierrors.ErrCodeClaimNotFound)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-1/claims?status=bogus", "", nil)
	assertError(t, w, http.StatusBadRequest, apierrors.ErrCodeValidationFailed)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims/"+claimID+"/deny", "userA", rest.DenyClaimRequest{Reason: "not yet"})
	require.Equal(t, http.StatusOK, w.Code)
	denied := decode[domain.Claim](t, w)
	assert.Equal(t, domain.ClaimStatusDenied, denied.Status)
	require.NotNil(t, denied.DenialReason)
	assert.Equal(t, "not yet", *denied.DenialReason)
}

func TestCancelClaim(t *testing.T) {
	api := setupTestAPI(t)

	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/assets/myth-2/claims", "userA", nil).Code)
	api.contribute(t, "myth-2", "userB", 10)
	w := api.do(t, http.MethodPost, "/api/v1/assets/myth-2/claims", "userB", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	claimID := decode[ownership.ClaimResult](t, w).Claim.ID

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-2/claims/"+claimID+"/cancel", "userC", nil)
	assertError(t, w, http.StatusForbidden, apierrors.ErrCodeNotOwner)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-2/claims/"+claimID+"/cancel", "userB", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.ClaimStatusDenied, decode[domain.Claim](t, w).Status)
}

func TestOwnershipEndpoints(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/assets/myth-3/ownership", "", nil)
	assertError(t, w, http.StatusNotFound, apierrors.ErrCodeOwnershipNotFound)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-3/ownership", "userA", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-3/can-edit", "userA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[rest.CanEditResponse](t, w).CanEdit)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-3/can-edit?user_id=userB", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[rest.CanEditResponse](t, w).CanEdit)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-3/can-edit", "", nil)
	assertError(t, w, http.StatusBadRequest, apierrors.ErrCodeBadRequest)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-3/transfer", "userA", map[string]string{})
	assertError(t, w, http.StatusBadRequest, apierrors.ErrCodeValidationFailed)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-3/transfer", "userB", rest.TransferOwnershipRequest{ToUserID: "userC"})
	assertError(t, w, http.StatusForbidden, apierrors.ErrCodeNotOwner)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-3/transfer", "userA", rest.TransferOwnershipRequest{ToUserID: "userB", ToUserName: "Bob"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec := decode[domain.OwnershipRecord](t, w)
	assert.Equal(t, "userB", *rec.OwnerID)
	assert.Equal(t, "Bob", rec.OwnerName)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-3/release", "userB", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec = decode[domain.OwnershipRecord](t, w)
	assert.Equal(t, domain.OwnershipStatusUnclaimed, rec.Status)
	assert.Nil(t, rec.OwnerID)
	assert.NotNil(t, rec.UnclaimedSince)
}

func TestContributionEndpoints(t *testing.T) {
	api := setupTestAPI(t)

	api.contribute(t, "myth-4", "userA", 3)
	api.contribute(t, "myth-4", "userB", 10)
	api.contribute(t, "myth-4", "userA", 4)

	w := api.do(t, http.MethodPost, "/api/v1/assets/myth-4/contributions", "userA", map[string]string{"type": "vandalism"})
	assertError(t, w, http.StatusBadRequest, apierrors.ErrCodeInvalidContributionType)

	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-4/contributions", "", map[string]string{"type": "comment"})
	assertError(t, w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-4/contributions?user_id=userA", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[rest.ContributionsResponse](t, w).Contributions, 2)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-4/contributors/top?limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	top := decode[rest.TopContributorsResponse](t, w)
	require.Len(t, top.Contributors, 1)
	assert.Equal(t, "userB", top.Contributors[0].UserID)
	assert.Equal(t, 1, top.Contributors[0].Rank)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-4/contributors/top?limit=0", "", nil)
	assertError(t, w, http.StatusBadRequest, apierrors.ErrCodeValidationFailed)

	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-4/contributors/userA/score", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), decode[rest.ScoreResponse](t, w).Score)

	w = api.do(t, http.MethodGet, "/api/v1/contribution-types", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	types := decode[rest.ContributionTypesResponse](t, w).Types
	require.Len(t, types, 7)
	assert.Equal(t, domain.ContributionTypeMajorEdit, types[0].Type)
}

func TestHealthCheck_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{})
	require.NoError(t, err)
	router := server.NewRouter(server.Config{}, rest.NewHandler(nil, nil, st), auth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMutationsAreRateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()

	st := store.NewMemoryStore()
	bus := events.NewBus(clock)
	ledger := contribution.NewLedger(st, cache.NewNoop(), bus, clock, contribution.Config{})
	svc := ownership.NewService(st, cache.NewNoop(), ledger, bus, clock, ownership.Config{})

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	require.NoError(t, err)
	limiter, err := ratelimit.New(ratelimit.Config{RequestsPerMinute: 2, Burst: 2}, nil, clock)
	require.NoError(t, err)

	api := &testAPI{router: server.NewRouter(server.Config{RateLimiter: limiter}, rest.NewHandler(svc, ledger, st), auth)}

	for i := 0; i < 2; i++ {
		api.contribute(t, "myth-1", "alice", 1)
	}
	w := api.do(t, http.MethodPost, "/api/v1/assets/myth-1/contributions", "alice", rest.RecordContributionRequest{
		Type: domain.ContributionTypeComment,
	})
	assertError(t, w, http.StatusTooManyRequests, apierrors.ErrCodeRateLimited)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	// Reads and other callers are unaffected
	w = api.do(t, http.MethodGet, "/api/v1/assets/myth-1/contributions", "alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	api.contribute(t, "myth-1", "bob", 1)
}

func TestRoutes_DispatchToHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := mocks.NewMockAPIHandler(ctrl)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	require.NoError(t, err)
	api := &testAPI{router: server.NewRouter(server.Config{}, handler, auth)}

	handler.EXPECT().GetOwnership(gomock.Any()).Do(func(c *gin.Context) {
		assert.Equal(t, "myth-1", c.Param("asset_id"))
		c.Status(http.StatusNoContent)
	})
	w := api.do(t, http.MethodGet, "/api/v1/assets/myth-1/ownership", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// mutations stop at the auth middleware for anonymous callers
	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims/c1/approve", "", nil)
	assertError(t, w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)

	handler.EXPECT().ApproveClaim(gomock.Any()).Do(func(c *gin.Context) {
		assert.Equal(t, "c1", c.Param("claim_id"))
		c.Status(http.StatusNoContent)
	})
	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims/c1/approve", "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestServiceErrorsAreMapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOwnershipService(ctrl)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	require.NoError(t, err)
	api := &testAPI{router: server.NewRouter(server.Config{}, rest.NewHandler(svc, nil, nil), auth)}

	svc.EXPECT().
		GetOwnership(gomock.Any(), "myth-1").
		Return(nil, domain.NewStorageError("get ownership", errors.New("connection reset")))
	w := api.do(t, http.MethodGet, "/api/v1/assets/myth-1/ownership", "", nil)
	assertError(t, w, http.StatusInternalServerError, apierrors.ErrCodeDatabaseError)
	assert.NotContains(t, w.Body.String(), "connection reset")

	svc.EXPECT().
		ClaimOwnership(gomock.Any(), "myth-1", "carol", "I rewrote it").
		DoAndReturn(func(ctx context.Context, assetID, userID, reason string) (*ownership.ClaimResult, error) {
			return nil, domain.NewError(domain.KindInsufficientContributionScore, "required 5, have 2")
		})
	w = api.do(t, http.MethodPost, "/api/v1/assets/myth-1/claims", "carol", rest.ClaimOwnershipRequest{Reason: "I rewrote it"})
	assertError(t, w, http.StatusForbidden, apierrors.ErrCodeInsufficientContributionScore)
}
