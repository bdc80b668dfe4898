package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// resolve runs UserFromRequest inside a real fiber request cycle.
func resolve(t *testing.T, id Identity, authHeader string) (string, bool) {
	t.Helper()
	app := fiber.New()
	var gotUser string
	var gotOK bool
	app.Get("/", func(c *fiber.Ctx) error {
		gotUser, gotOK = id.UserFromRequest(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return gotUser, gotOK
}

func TestJWTIdentity_ValidToken(t *testing.T) {
	id := NewJWTIdentity(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	user, ok := resolve(t, id, "Bearer "+token)
	assert.True(t, ok)
	assert.Equal(t, "user-42", user)
}

func TestJWTIdentity_Rejections(t *testing.T) {
	id := NewJWTIdentity(testSecret)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
			"sub": "user-42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-42",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"no subject", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := resolve(t, id, c.header)
			assert.False(t, ok)
		})
	}
}

func TestJWTIdentity_RejectsUnsignedAlg(t *testing.T) {
	id := NewJWTIdentity(testSecret)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-42"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := resolve(t, id, "Bearer "+signed)
	assert.False(t, ok)
}
