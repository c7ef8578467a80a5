package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Claims identify the caller. Tokens are issued elsewhere; this service only verifies them.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for actor. It is used by the seed command
// and tests.
func IssueToken(secret []byte, actor identity.Actor, ttl time.Duration, now time.Time) (string, error) {
	id := actor.UserID()
	if id == nil {
		return "", errors.New("system actor cannot hold a token")
	}
	claims := Claims{
		Role: actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the signature and expiry and returns the caller.
func ParseToken(secret []byte, raw string) (identity.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return identity.Actor{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return identity.Actor{}, err
	}
	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return identity.Actor{}, err
	}
	return identity.NewActor(userID, role)
}

// Authenticate requires a valid bearer token and stores the actor in the context.
func (s *Server) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "missing bearer token"))
		}

		actor, err := ParseToken(s.jwtSecret, strings.TrimSpace(raw))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "invalid token"))
		}
		c.Set(actorContextKey, actor)
		return next(c)
	}
}

func actorFrom(c echo.Context) identity.Actor {
	actor, _ := c.Get(actorContextKey).(identity.Actor)
	return actor
}
