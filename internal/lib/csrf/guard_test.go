package csrf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	g, err := NewGuard("csrf_test_secret", time.Hour)
	require.NoError(t, err)
	return g
}

func TestNewGuard_EmptySecret(t *testing.T) {
	_, err := NewGuard("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestGuard_IssueVerify(t *testing.T) {
	g := newTestGuard(t)

	token, err := g.Issue()
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.True(t, g.Verify(token))

	other, err := g.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGuard_Verify_Rejects(t *testing.T) {
	g := newTestGuard(t)
	token, err := g.Issue()
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	foreign, err := NewGuard("another_secret", time.Hour)
	require.NoError(t, err)
	foreignToken, err := foreign.Issue()
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "64 hex chars of the right length", token: strings.Repeat("a", 64)},
		{name: "two parts", token: parts[0] + "." + parts[1]},
		{name: "signed with another secret", token: foreignToken},
		{name: "tampered expiry", token: parts[0] + ".99999999999." + parts[2]},
		{name: "tampered nonce", token: "AAAAAAAAAAAAAAAAAAAAAA." + parts[1] + "." + parts[2]},
		{name: "bad signature encoding", token: parts[0] + "." + parts[1] + ".***"},
		{name: "short nonce", token: "AAAA." + parts[1] + "." + parts[2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, g.Verify(tt.token))
		})
	}
}

func TestGuard_Verify_Expired(t *testing.T) {
	g := newTestGuard(t)
	now := time.Now()
	g.now = func() time.Time { return now }

	token, err := g.Issue()
	require.NoError(t, err)
	require.True(t, g.Verify(token))

	now = now.Add(time.Hour + time.Second)
	assert.False(t, g.Verify(token))
}
