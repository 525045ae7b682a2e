package utils

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenIssuer_SignParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	name := "Nat"

	token, err := issuer.Sign(Claims{UserID: 10, Email: "a@b.com", Name: &name, Role: "user"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(10), claims.CallerID())
	assert.Equal(t, "a@b.com", claims.Email)
	require.NotNil(t, claims.Name)
	assert.Equal(t, "Nat", *claims.Name)
	assert.Equal(t, "user", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenIssuer_Parse_Invalid(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := other.Sign(Claims{UserID: 1, Role: "user"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)

	_, err = issuer.Parse("not.a.token")
	assert.Error(t, err)

	expired := NewTokenIssuer("secret", -time.Minute)
	token, err = expired.Sign(Claims{UserID: 1, Role: "user"})
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestClaims_CallerID(t *testing.T) {
	for name, tc := range map[string]struct {
		claims Claims
		want   uint
	}{
		"id only":     {claims: Claims{UserID: 3}, want: 3},
		"userId only": {claims: Claims{LegacyUserID: 4}, want: 4},
		"both":        {claims: Claims{UserID: 3, LegacyUserID: 4}, want: 4},
		"none":        {claims: Claims{}, want: 0},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.claims.CallerID())
		})
	}
}

func TestClaims_LegacyTokenAccepted(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 42,
		"email":  "legacy@b.com",
		"role":   "admin",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := NewTokenIssuer("secret", time.Hour).Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.CallerID())
	assert.Equal(t, "admin", claims.Role)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", hash)
	assert.True(t, h.Verify("pass1234", hash))
	assert.False(t, h.Verify("wrong", hash))

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
}

func TestTokenBlacklist_Memory(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBlacklist(nil)

	assert.False(t, b.IsRevoked(ctx, "t1"))

	b.Revoke(ctx, "t1", time.Now().Add(time.Minute))
	assert.True(t, b.IsRevoked(ctx, "t1"))

	// already expired tokens are not stored
	b.Revoke(ctx, "t2", time.Now().Add(-time.Minute))
	assert.False(t, b.IsRevoked(ctx, "t2"))
}

func TestCache_NilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewCache(nil)

	c.SetJSON(ctx, "k", map[string]int{"a": 1}, 0)
	var out map[string]int
	assert.False(t, c.GetJSON(ctx, "k", &out))
	c.Delete(ctx, "k")
	c.InvalidateByPrefix(ctx, "k")

	var nilCache *Cache
	assert.False(t, nilCache.GetJSON(ctx, "k", &out))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("<b>hello</b>"))
	out := Sanitize(`<p onclick="x()">hi<script>alert(1)</script></p>`)
	assert.Contains(t, out, "<p>hi</p>")
	assert.False(t, strings.Contains(out, "script"))
}
