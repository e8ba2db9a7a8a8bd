package identity

import (
	"context"

	"github.com/feral-file/ff-ownership/internal/domain"
)

// Caller is the authenticated user on whose behalf an operation runs
type Caller struct {
	ID    string
	Name  string
	Email string
}

// User converts the caller into the denormalized user fields stored on records
func (c Caller) User() domain.User {
	return domain.User{ID: c.ID, Name: c.Name, Email: c.Email}
}

type callerKey struct{}

// WithCaller returns a context carrying the caller
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// FromContext returns the caller carried by ctx, if any
func FromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || caller.ID == "" {
		return Caller{}, false
	}
	return caller, true
}

// Require returns the caller or an AuthenticationRequired error
func Require(ctx context.Context) (Caller, error) {
	caller, ok := FromContext(ctx)
	if !ok {
		return Caller{}, domain.ErrAuthenticationRequired
	}
	return caller, nil
}

// RequireUser returns the caller when it matches userID, otherwise an AuthenticationRequired error
func RequireUser(ctx context.Context, userID string) (Caller, error) {
	caller, err := Require(ctx)
	if err != nil {
		return Caller{}, err
	}
	if caller.ID != userID {
		return Caller{}, domain.NewError(domain.KindAuthenticationRequired, "caller does not match user")
	}
	return caller, nil
}
