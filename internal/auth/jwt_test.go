package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksalp/lernportal/internal/auth"
)

func TestIssueAndVerify(t *testing.T) {
	i := auth.NewIssuer("secret", time.Hour)

	token, err := i.Issue("a1", "Mia", []string{"7b"})
	require.NoError(t, err)

	claims, err := i.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.AccountID)
	assert.Equal(t, "Mia", claims.Name)
	assert.Equal(t, []string{"7b"}, claims.Classes)
}

func TestVerify_Rejects(t *testing.T) {
	i := auth.NewIssuer("secret", time.Hour)
	other := auth.NewIssuer("other", time.Hour)
	expired := auth.NewIssuer("secret", time.Nanosecond)

	foreign, err := other.Issue("a1", "Mia", nil)
	require.NoError(t, err)
	stale, err := expired.Issue("a1", "Mia", nil)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"wrong secret": foreign,
		"expired":      stale,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := i.Verify(token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestIssue_RequiresAccount(t *testing.T) {
	_, err := auth.NewIssuer("secret", 0).Issue("", "Mia", nil)
	assert.Error(t, err)
}
