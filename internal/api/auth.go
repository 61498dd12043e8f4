package api

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/api/handlers"
	"example.com/backstage/services/campaign/internal/domain"
)

// RoleResolver resolves the capabilities of an authenticated user
type RoleResolver interface {
	Resolve(ctx context.Context, userID string) (domain.Capabilities, error)
}

// Authenticator verifies HS256 bearer tokens. The sub claim is the user id.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
	roles  RoleResolver
}

// NewAuthenticator creates an authenticator
func NewAuthenticator(cfg config.AuthConfig, roles RoleResolver) *Authenticator {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Authenticator{
		secret: []byte(cfg.JWTSecret),
		parser: jwt.NewParser(opts...),
		roles:  roles,
	}
}

// UserID verifies a raw token and returns its subject
func (a *Authenticator) UserID(raw string) (string, error) {
	token, err := a.parser.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return sub, nil
}

// Middleware authenticates the request and resolves the caller's capabilities
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			handlers.WriteError(c, handlers.ErrUnauthorized)
			return
		}

		userID, err := a.UserID(raw)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected bearer token")
			handlers.WriteError(c, handlers.ErrUnauthorized)
			return
		}

		caps, err := a.roles.Resolve(c.Request.Context(), userID)
		if err != nil {
			handlers.WriteError(c, err)
			return
		}

		handlers.SetPrincipal(c, userID, caps)
		c.Next()
	}
}
