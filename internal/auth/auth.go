// Package auth is the identity-provider boundary. The rest of the service
// only ever asks "who is making this request, if anyone" — session issuance
// and user management live elsewhere.
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity resolves an optional authenticated user from a request.
type Identity interface {
	UserFromRequest(c *fiber.Ctx) (string, bool)
}

// JWTIdentity validates HS256 bearer tokens and reads the user id from the
// sub claim.
type JWTIdentity struct {
	secret []byte
}

func NewJWTIdentity(secret string) *JWTIdentity {
	return &JWTIdentity{secret: []byte(secret)}
}

func (j *JWTIdentity) UserFromRequest(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header {
		return "", false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
