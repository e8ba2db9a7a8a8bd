package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/identity"
)

func TestFromContext(t *testing.T) {
	_, ok := identity.FromContext(context.Background())
	assert.False(t, ok)

	ctx := identity.WithCaller(context.Background(), identity.Caller{ID: "alice", Name: "Alice", Email: "alice@example.com"})
	caller, ok := identity.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, domain.User{ID: "alice", Name: "Alice", Email: "alice@example.com"}, caller.User())

	// an empty id is treated as anonymous
	_, ok = identity.FromContext(identity.WithCaller(context.Background(), identity.Caller{Name: "ghost"}))
	assert.False(t, ok)
}

func TestRequireUser(t *testing.T) {
	ctx := identity.WithCaller(context.Background(), identity.Caller{ID: "alice"})

	_, err := identity.RequireUser(context.Background(), "alice")
	assert.True(t, errors.Is(err, domain.ErrAuthenticationRequired))

	_, err = identity.RequireUser(ctx, "bob")
	assert.True(t, errors.Is(err, domain.ErrAuthenticationRequired))

	caller, err := identity.RequireUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", caller.ID)
}
