package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/logger"
)

const (
	AUTH_TYPE_JWT    = "jwt"
	AUTH_TYPE_APIKEY = "apikey"

	// Headers identifying the acting user on API key requests
	HEADER_USER_ID    = "X-User-Id"
	HEADER_USER_NAME  = "X-User-Name"
	HEADER_USER_EMAIL = "X-User-Email"
)

var errMissingAuthorization = errors.New("missing Authorization header")

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// UserClaims are the JWT claims identifying the caller
type UserClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Authenticator resolves the caller of a request from its Authorization header
type Authenticator struct {
	publicKey *rsa.PublicKey
	apiKeys   map[string]bool
	parser    *jwt.Parser
}

// NewAuthenticator parses the configured key once. An empty key disables JWT authentication.
func NewAuthenticator(cfg AuthConfig, options ...jwt.ParserOption) (*Authenticator, error) {
	a := &Authenticator{
		apiKeys: make(map[string]bool),
		parser:  jwt.NewParser(append([]jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}, options...)...),
	}
	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys[key] = true
		}
	}
	if cfg.JWTPublicKey != "" {
		publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		a.publicKey = publicKey
	}
	return a, nil
}

// Authenticate validates the Authorization header and returns the caller it identifies
func (a *Authenticator) Authenticate(authHeader string, headers func(string) string) (identity.Caller, string, error) {
	if authHeader == "" {
		return identity.Caller{}, "", errMissingAuthorization
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return identity.Caller{}, "", errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(parts[0]) {
	case "bearer":
		claims, err := a.validateJWT(parts[1])
		if err != nil {
			return identity.Caller{}, "", err
		}
		return identity.Caller{ID: claims.Subject, Name: claims.Name, Email: claims.Email}, AUTH_TYPE_JWT, nil

	case "apikey":
		if err := a.validateAPIKey(parts[1]); err != nil {
			return identity.Caller{}, "", err
		}
		// service-to-service calls act on behalf of the user named in the headers
		caller := identity.Caller{
			ID:    headers(HEADER_USER_ID),
			Name:  headers(HEADER_USER_NAME),
			Email: headers(HEADER_USER_EMAIL),
		}
		if caller.ID == "" {
			return identity.Caller{}, "", fmt.Errorf("%s header is required with API key authentication", HEADER_USER_ID)
		}
		return caller, AUTH_TYPE_APIKEY, nil

	default:
		return identity.Caller{}, "", fmt.Errorf("unsupported authorization type: %s", parts[0])
	}
}

// Auth stores the caller identified by the Authorization header in the request context.
// Anonymous requests pass through, invalid credentials are rejected.
func Auth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		caller, authType, err := a.Authenticate(authHeader, c.GetHeader)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			abortUnauthorized(c, err.Error())
			return
		}

		logger.DebugCtx(c.Request.Context(), "Authentication successful",
			zap.String("auth_type", authType),
			zap.String("user_id", caller.ID),
			zap.String("path", c.Request.URL.Path),
		)

		c.Request = c.Request.WithContext(identity.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

// RequireCaller rejects anonymous requests. It must run after Auth.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := identity.FromContext(c.Request.Context()); !ok {
			abortUnauthorized(c, errMissingAuthorization.Error())
			return
		}
		c.Next()
	}
}

func (a *Authenticator) validateJWT(tokenString string) (*UserClaims, error) {
	if a.publicKey == nil {
		return nil, errors.New("JWT public key not configured")
	}

	claims := &UserClaims{}
	token, err := a.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func (a *Authenticator) validateAPIKey(apiKey string) error {
	if len(a.apiKeys) == 0 {
		return errors.New("no API keys configured")
	}
	if !a.apiKeys[apiKey] {
		return errors.New("invalid API key")
	}
	return nil
}

// parseRSAPublicKey accepts PKIX and PKCS1 PEM blocks
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}
	return rsaKey, nil
}
