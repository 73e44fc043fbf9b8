package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Manager runs the authentication lifecycle of a Session
type Manager struct {
	client  Caller
	store   TokenStore
	session *Session
	logger  zerolog.Logger
}

// NewManager creates a new Manager. The client should read its bearer token
// from sess.Token.
func NewManager(client Caller, store TokenStore, sess *Session, logger zerolog.Logger) *Manager {
	return &Manager{
		client:  client,
		store:   store,
		session: sess,
		logger:  logger,
	}
}

// Session returns the managed session
func (m *Manager) Session() *Session {
	return m.session
}

// Bootstrap restores the session from the persisted token. Without a token no
// request is made. A token the backend does not accept, for whatever reason,
// is cleared and the session becomes anonymous; that failure is only logged.
func (m *Manager) Bootstrap(ctx context.Context) {
	token, err := m.store.Load()
	if err != nil {
		m.logger.Warn().Err(err).Msg("Failed to load persisted token")
		token = ""
	}

	if token == "" {
		m.session.clear()
		m.logger.Debug().Msg("No persisted token, continuing anonymously")
		return
	}

	m.session.begin(token)

	var resp userResponse
	err = m.client.Call(ctx, http.MethodGet, "/auth/verify", nil, &resp)
	if err == nil && resp.User == nil {
		err = ErrIncompleteResponse
	}
	if err != nil {
		m.logger.Debug().Err(err).Msg("Auth verification failed, clearing persisted token")
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn().Err(clearErr).Msg("Failed to clear persisted token")
		}
		m.session.clear()
		return
	}

	m.session.set(token, resp.User)
	m.logger.Debug().Str("user", resp.User.Username).Msg("Session restored")
}

// Login authenticates with email and password. On failure the session is
// left untouched and the backend message is returned as the error.
func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	return m.authenticate(ctx, "/auth/login", Credentials{Email: email, Password: password})
}

// Register creates a remote account and logs in with it. Same contract as Login.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" {
		return "", ErrMissingCredentials
	}

	return m.authenticate(ctx, "/auth/register", req)
}

func (m *Manager) authenticate(ctx context.Context, endpoint string, body any) (string, error) {
	var resp authResponse
	if err := m.client.Call(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" || resp.User == nil {
		return "", fmt.Errorf("%s: %w", endpoint, ErrIncompleteResponse)
	}

	m.session.set(resp.Token, resp.User)
	if err := m.store.Save(resp.Token); err != nil {
		// The in-memory session is valid; only the next start loses it.
		m.logger.Warn().Err(err).Msg("Failed to persist token")
	}

	m.logger.Info().Str("user", resp.User.Username).Msg("Logged in")
	return resp.Message, nil
}

// Logout clears the identity, the token and the persisted token. It never fails.
func (m *Manager) Logout() {
	m.session.clear()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to clear persisted token")
	}
}

// UpdateProfile sends profile changes and adopts the server's representation
// of the user.
func (m *Manager) UpdateProfile(ctx context.Context, data ProfileData) (string, error) {
	if !m.session.IsAuthenticated() {
		return "", ErrNotAuthenticated
	}
	if data.FavoriteGenres == nil {
		data.FavoriteGenres = []int{}
	}

	var resp userResponse
	if err := m.client.Call(ctx, http.MethodPut, "/users/profile", data, &resp); err != nil {
		return "", err
	}
	if resp.User == nil {
		return "", fmt.Errorf("/users/profile: %w", ErrIncompleteResponse)
	}

	if !m.session.replaceUser(resp.User) {
		// Logged out while the request was in flight.
		return "", ErrNotAuthenticated
	}
	return resp.Message, nil
}
