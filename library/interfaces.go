package library

import (
	"context"

	"github.com/s0up4200/reelkeeper/session"
)

// Caller sends a JSON request to the backend. *api.Client implements it.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body, out any) error
}

// Identity exposes the authentication state the library checks before every
// request. *session.Session implements it.
type Identity interface {
	IsAuthenticated() bool
	User() *session.User
}
