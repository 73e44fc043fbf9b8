package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/reelkeeper/api"
	"github.com/s0up4200/reelkeeper/backendtest"
)

func newTestManager(t *testing.T, srv *backendtest.Server, store TokenStore) *Manager {
	t.Helper()

	sess := New()
	client, err := api.NewClient(srv.BaseURL(), zerolog.Nop(), api.WithTokenSource(sess.Token))
	require.NoError(t, err)

	return NewManager(client, store, sess, zerolog.Nop())
}

// countingCaller fails the test if any request is made
type countingCaller struct {
	calls int
}

func (c *countingCaller) Call(ctx context.Context, method, endpoint string, body, out any) error {
	c.calls++
	return errors.New("unexpected call")
}

func TestBootstrap_NoToken(t *testing.T) {
	caller := &countingCaller{}
	m := NewManager(caller, NewMemoryStore(""), New(), zerolog.Nop())

	m.Bootstrap(context.Background())

	assert.Equal(t, StateAnonymous, m.Session().State())
	assert.Equal(t, 0, caller.calls, "no verify call without a token")
	<-m.Session().Done()
}

func TestBootstrap_ValidToken(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	srv.AddUser("neo", "neo@example.com", "pw")
	token := srv.IssueToken("neo@example.com")

	store := NewMemoryStore(token)
	m := newTestManager(t, srv, store)

	m.Bootstrap(context.Background())

	sess := m.Session()
	assert.Equal(t, StateAuthenticated, sess.State())
	assert.Equal(t, token, sess.Token())
	require.NotNil(t, sess.User())
	assert.Equal(t, "neo", sess.User().Username)
	assert.Equal(t, 1, srv.Count("GET /auth/verify"))

	persisted, _ := store.Load()
	assert.Equal(t, token, persisted)
}

func TestBootstrap_RejectedToken(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()

	store := NewMemoryStore("expired")
	m := newTestManager(t, srv, store)

	m.Bootstrap(context.Background())

	sess := m.Session()
	assert.Equal(t, StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())

	persisted, _ := store.Load()
	assert.Empty(t, persisted, "rejected token is cleared from the store")
}

func TestBootstrap_NetworkFailure(t *testing.T) {
	srv := backendtest.New()
	baseURL := srv.BaseURL()
	srv.Close()

	sess := New()
	client, err := api.NewClient(baseURL, zerolog.Nop(), api.WithTokenSource(sess.Token))
	require.NoError(t, err)

	store := NewMemoryStore("T1")
	m := NewManager(client, store, sess, zerolog.Nop())
	m.Bootstrap(context.Background())

	assert.Equal(t, StateAnonymous, sess.State())
	persisted, _ := store.Load()
	assert.Empty(t, persisted)
}

func TestLogin(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	srv.AddUser("neo", "a@b.com", "pw")

	store := NewMemoryStore("")
	m := newTestManager(t, srv, store)
	m.Bootstrap(context.Background())

	msg, err := m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", msg)

	sess := m.Session()
	assert.Equal(t, StateAuthenticated, sess.State())
	assert.Equal(t, "T1", sess.Token())
	assert.Equal(t, "neo", sess.User().Username)

	persisted, _ := store.Load()
	assert.Equal(t, "T1", persisted)
}

func TestLogin_FailureLeavesSessionUnchanged(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	srv.AddUser("neo", "a@b.com", "pw")

	tests := []struct {
		name  string
		setup func(m *Manager)
	}{
		{
			name:  "anonymous",
			setup: func(m *Manager) { m.Bootstrap(context.Background()) },
		},
		{
			name: "already authenticated",
			setup: func(m *Manager) {
				_, err := m.Login(context.Background(), "a@b.com", "pw")
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore("")
			m := newTestManager(t, srv, store)
			tt.setup(m)

			sess := m.Session()
			beforeToken, beforeUser := sess.Token(), sess.User()
			beforePersisted, _ := store.Load()

			msg, err := m.Login(context.Background(), "a@b.com", "wrong")
			require.Error(t, err)
			assert.Empty(t, msg)
			assert.Equal(t, "Invalid credentials", err.Error())

			assert.Equal(t, beforeToken, sess.Token())
			assert.Equal(t, beforeUser, sess.User())
			afterPersisted, _ := store.Load()
			assert.Equal(t, beforePersisted, afterPersisted)
		})
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	caller := &countingCaller{}
	m := NewManager(caller, NewMemoryStore(""), New(), zerolog.Nop())

	_, err := m.Login(context.Background(), " ", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = m.Login(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Equal(t, 0, caller.calls)
}

func TestLogin_IncompleteResponse(t *testing.T) {
	server := newStaticServer(t, http.StatusOK, `{"message":"Login successful","token":"T1"}`)

	sess := New()
	client, err := api.NewClient(server, zerolog.Nop())
	require.NoError(t, err)
	m := NewManager(client, NewMemoryStore(""), sess, zerolog.Nop())
	m.Bootstrap(context.Background())

	_, err = m.Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrIncompleteResponse)
	assert.Equal(t, StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
}

func TestRegister(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()

	store := NewMemoryStore("")
	m := newTestManager(t, srv, store)
	m.Bootstrap(context.Background())

	msg, err := m.Register(context.Background(), RegisterRequest{
		Username:  "trinity",
		Email:     "trinity@example.com",
		Password:  "pw",
		FirstName: "Trinity",
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)
	assert.True(t, m.Session().IsAuthenticated())
	assert.Equal(t, "Trinity", m.Session().User().DisplayName())

	persisted, _ := store.Load()
	assert.Equal(t, m.Session().Token(), persisted)

	// Duplicate registration fails without touching the session.
	token := m.Session().Token()
	_, err = m.Register(context.Background(), RegisterRequest{Username: "x", Email: "trinity@example.com", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, "User already exists", err.Error())
	assert.Equal(t, token, m.Session().Token())
}

func TestLogout(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	srv.AddUser("neo", "a@b.com", "pw")

	tests := []struct {
		name  string
		login bool
	}{
		{name: "from authenticated", login: true},
		{name: "from anonymous", login: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore("")
			m := newTestManager(t, srv, store)
			m.Bootstrap(context.Background())
			if tt.login {
				_, err := m.Login(context.Background(), "a@b.com", "pw")
				require.NoError(t, err)
			}

			m.Logout()

			sess := m.Session()
			assert.Equal(t, StateAnonymous, sess.State())
			assert.Empty(t, sess.Token())
			assert.Nil(t, sess.User())
			persisted, _ := store.Load()
			assert.Empty(t, persisted)
		})
	}

	t.Run("from pending", func(t *testing.T) {
		m := NewManager(&countingCaller{}, NewMemoryStore("T9"), New(), zerolog.Nop())
		m.Logout()
		assert.Equal(t, StateAnonymous, m.Session().State())
		<-m.Session().Done()
	})
}

func TestUpdateProfile(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	srv.AddUser("neo", "a@b.com", "pw")

	m := newTestManager(t, srv, NewMemoryStore(""))
	m.Bootstrap(context.Background())

	_, err := m.UpdateProfile(context.Background(), ProfileData{FirstName: "Thomas"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, srv.Count("PUT /users/profile"))

	_, err = m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	token := m.Session().Token()

	msg, err := m.UpdateProfile(context.Background(), ProfileData{
		FirstName:      "  Thomas ",
		LastName:       "Anderson",
		Bio:            "The One",
		FavoriteGenres: []int{28, 878},
	})
	require.NoError(t, err)
	assert.Equal(t, "Profile updated successfully", msg)

	user := m.Session().User()
	assert.Equal(t, "Thomas", user.Profile.FirstName, "server-normalized value wins")
	assert.Equal(t, "The One", user.Profile.Bio)
	assert.Equal(t, []int{28, 878}, user.Preferences.FavoriteGenres)
	assert.Equal(t, token, m.Session().Token())
}

func TestUpdateProfile_FailureKeepsIdentity(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	srv.AddUser("neo", "a@b.com", "pw")

	m := newTestManager(t, srv, NewMemoryStore(""))
	_, err := m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	before := m.Session().User()

	srv.Fail("PUT /users/profile", http.StatusInternalServerError)
	_, err = m.UpdateProfile(context.Background(), ProfileData{FirstName: "Thomas"})

	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, before, m.Session().User())
}
