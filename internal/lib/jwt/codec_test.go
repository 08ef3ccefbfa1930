package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

const testSecret = "test_secret_key_1234567890"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testSecret, 0)
	require.NoError(t, err)
	return c
}

func TestNewCodec(t *testing.T) {
	_, err := NewCodec("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	c, err := NewCodec("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, c.TTL())
}

func TestCodec_IssueAndVerify_ValidCases(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name    string
		subject string
		role    models.Role
		email   string
	}{
		{name: "client", subject: "5b0a1c1e-6c2f-4c41-9f7e-0c1b9d3e4a11", role: models.RoleClient, email: "klijent@example.com"},
		{name: "educator", subject: "edu-1", role: models.RoleEducator, email: "edukator@example.com"},
		{name: "admin without email", subject: "adm-1", role: models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := codec.Issue(tt.subject, tt.role, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			p, err := codec.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, p.SubjectID)
			assert.Equal(t, tt.role, p.Role)
			assert.Equal(t, tt.email, p.Email)
			assert.Equal(t, p, codec.Decode(token))
		})
	}
}

func TestCodec_Issue_ExpiryIsSevenDays(t *testing.T) {
	codec := newTestCodec(t)
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issuedAt }

	token, err := codec.Issue("u1", models.RoleClient, "")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, issuedAt, claims.IssuedAt.Time.UTC())
	assert.Equal(t, "CLIENT", claims.Role)
}

func TestCodec_Issue_RejectsIncompleteIdentity(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Issue("", models.RoleClient, "")
	assert.Error(t, err)
	_, err = codec.Issue("u1", models.Role("ROOT"), "")
	assert.Error(t, err)
}

func TestCodec_Verify_InvalidTokens(t *testing.T) {
	codec := newTestCodec(t)

	validToken, err := codec.Issue("u1", models.RoleClient, "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: createExpiredToken(t)},
		{name: "wrong secret key", token: createTokenWithWrongSecret(t)},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "unknown role", token: signRaw(t, testSecret, jwt.SigningMethodHS256, "u1", "ROOT")},
		{name: "missing subject", token: signRaw(t, testSecret, jwt.SigningMethodHS256, "", "CLIENT")},
		{name: "other hmac algorithm", token: signRaw(t, testSecret, jwt.SigningMethodHS512, "u1", "CLIENT")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := codec.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidCredential)
			assert.True(t, p.IsAnonymous())

			assert.Equal(t, models.Anonymous(), codec.Decode(tt.token), "lenient decode must equal absent credential")
		})
	}
}

func TestCodec_TokenExpiration(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now()
	codec.now = func() time.Time { return now }

	token, err := codec.Issue("u1", models.RoleClient, "")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.NoError(t, err)

	now = now.Add(DefaultTTL + time.Second)
	_, err = codec.Verify(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func createExpiredToken(t *testing.T) string {
	c := newTestCodec(t)
	c.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	token, err := c.Issue("u1", models.RoleClient, "")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	c, err := NewCodec("wrong_secret_key", time.Hour)
	require.NoError(t, err)
	token, err := c.Issue("u1", models.RoleClient, "")
	require.NoError(t, err)
	return token
}

func signRaw(t *testing.T, secret string, method jwt.SigningMethod, sub, role string) string {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
