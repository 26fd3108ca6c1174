package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	in := Session{UserID: "u-1", Email: "a@x.com", Role: RoleAdmin}

	token, err := issuer.Generate(in)
	require.NoError(t, err)

	out, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.True(t, out.IsAdmin())
}

func TestIssuer_Errors(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		issuer := NewIssuer("", time.Hour)
		_, err := issuer.Generate(Session{UserID: "u-1"})
		assert.ErrorIs(t, err, ErrMissingSecret)

		_, err = issuer.Parse("whatever")
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := NewIssuer("one", time.Hour).Generate(Session{UserID: "u-1"})
		require.NoError(t, err)

		_, err = NewIssuer("two", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		issuer := NewIssuer("secret", time.Minute)
		issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := issuer.Generate(Session{UserID: "u-1"})
		require.NoError(t, err)

		_, err = NewIssuer("secret", time.Minute).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := NewIssuer("secret", time.Minute).Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)

	_, ok = SessionFrom(WithSession(context.Background(), Session{}))
	assert.False(t, ok, "empty user id is not a session")

	s, ok := SessionFrom(WithSession(context.Background(), Session{UserID: "u-9", Role: RoleUser}))
	assert.True(t, ok)
	assert.Equal(t, "u-9", s.UserID)
	assert.False(t, s.IsAdmin())
}
