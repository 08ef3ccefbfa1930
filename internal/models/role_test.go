package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	for _, s := range []string{"", "KLIJENT", "admin", "SUPERUSER"} {
		_, err := ParseRole(s)
		assert.ErrorIs(t, err, ErrUnknownRole, s)
	}
}

func TestNewPrincipal_CollapsesPartialStates(t *testing.T) {
	assert.True(t, NewPrincipal("", RoleClient, "a@b.rs").IsAnonymous())
	assert.True(t, NewPrincipal("42", Role("ROOT"), "").IsAnonymous())
	assert.Equal(t, Anonymous(), NewPrincipal("42", "", ""))

	p := NewPrincipal("42", RoleEducator, "e@b.rs")
	assert.False(t, p.IsAnonymous())
	assert.True(t, p.Is(RoleEducator))
	assert.False(t, p.Is(RoleAdmin))
}

func TestLoginRequest_Login(t *testing.T) {
	assert.Equal(t, "a@b.rs", LoginRequest{Email: "a@b.rs", Username: "x"}.Login())
	assert.Equal(t, "x@b.rs", LoginRequest{Username: "x@b.rs"}.Login())
}
