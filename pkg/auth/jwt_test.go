package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundtrip(t *testing.T) {
	s := NewSigner("test-secret", 12*time.Hour)

	tok, err := s.Issue(42, time.Now())
	require.NoError(t, err)

	id, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestParseWrongSecret(t *testing.T) {
	tok, err := NewSigner("secret-a", time.Hour).Issue(1, time.Now())
	require.NoError(t, err)

	_, err = NewSigner("secret-b", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	tok, err := s.Issue(1, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	_, err := s.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
