package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership/internal/api/middleware"
	apierrors "github.com/feral-file/ff-ownership/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership/internal/identity"
)

const testAPIKey = "service-key"

type testAuth struct {
	key    *rsa.PrivateKey
	router *gin.Engine
}

func setupTestAuth(t *testing.T) *testAuth {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: string(publicPEM),
		APIKeys:      []string{testAPIKey, ""},
	})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Auth(auth))

	whoami := func(c *gin.Context) {
		caller, ok := identity.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "id": caller.ID, "name": caller.Name, "email": caller.Email})
	}
	router.GET("/public", whoami)
	router.GET("/private", middleware.RequireCaller(), whoami)

	return &testAuth{key: key, router: router}
}

func (ta *testAuth) sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims middleware.UserClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func (ta *testAuth) do(path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func validClaims(subject string) middleware.UserClaims {
	return middleware.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:  "Alice",
		Email: "alice@example.com",
	}
}

func TestAuth_JWT(t *testing.T) {
	ta := setupTestAuth(t)
	token := ta.sign(t, jwt.SigningMethodRS256, ta.key, validClaims("userA"))

	w := ta.do("/private", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "userA", body["id"])
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestAuth_APIKey(t *testing.T) {
	ta := setupTestAuth(t)

	w := ta.do("/private", map[string]string{
		"Authorization":              "ApiKey " + testAPIKey,
		middleware.HEADER_USER_ID:    "userB",
		middleware.HEADER_USER_NAME:  "Bob",
		middleware.HEADER_USER_EMAIL: "bob@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "userB", body["id"])
	assert.Equal(t, "Bob", body["name"])
}

func TestAuth_Anonymous(t *testing.T) {
	ta := setupTestAuth(t)

	w := ta.do("/public", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["authenticated"])

	w = ta.do("/private", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Rejected(t *testing.T) {
	ta := setupTestAuth(t)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	expired := validClaims("userA")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noSubject := validClaims("")

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"malformed header", map[string]string{"Authorization": "Bearer"}},
		{"unsupported scheme", map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}},
		{"garbage token", map[string]string{"Authorization": "Bearer not-a-jwt"}},
		{"expired token", map[string]string{"Authorization": "Bearer " + ta.sign(t, jwt.SigningMethodRS256, ta.key, expired)}},
		{"foreign key", map[string]string{"Authorization": "Bearer " + ta.sign(t, jwt.SigningMethodRS256, otherKey, validClaims("userA"))}},
		{"hmac token", map[string]string{"Authorization": "Bearer " + ta.sign(t, jwt.SigningMethodHS256, []byte("secret"), validClaims("userA"))}},
		{"no subject", map[string]string{"Authorization": "Bearer " + ta.sign(t, jwt.SigningMethodRS256, ta.key, noSubject)}},
		{"wrong api key", map[string]string{"Authorization": "ApiKey nope", middleware.HEADER_USER_ID: "userB"}},
		{"api key without user", map[string]string{"Authorization": "ApiKey " + testAPIKey}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// invalid credentials are rejected even on public routes
			w := ta.do("/public", tt.headers)
			require.Equal(t, http.StatusUnauthorized, w.Code)

			var resp apierrors.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, apierrors.ErrCodeUnauthorized, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Details)
		})
	}
}

func TestNewAuthenticator_InvalidKey(t *testing.T) {
	_, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: "not a pem"})
	assert.ErrorContains(t, err, "failed to parse RSA public key")
}

func TestAuth_JWTDisabled(t *testing.T) {
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{})
	require.NoError(t, err)

	_, _, err = auth.Authenticate("Bearer token", func(string) string { return "" })
	assert.ErrorContains(t, err, "JWT public key not configured")

	_, _, err = auth.Authenticate("ApiKey key", func(string) string { return "userA" })
	assert.ErrorContains(t, err, "no API keys configured")
}
