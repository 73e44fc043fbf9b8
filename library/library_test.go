package library

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/reelkeeper/api"
	"github.com/s0up4200/reelkeeper/backendtest"
	"github.com/s0up4200/reelkeeper/session"
)

func newTestLibrary(t *testing.T, srv *backendtest.Server) (*Library, *session.Manager) {
	t.Helper()

	sess := session.New()
	client, err := api.NewClient(srv.BaseURL(), zerolog.Nop(), api.WithTokenSource(sess.Token))
	require.NoError(t, err)

	manager := session.NewManager(client, session.NewMemoryStore(""), sess, zerolog.Nop())
	manager.Bootstrap(context.Background())

	return New(client, sess, zerolog.Nop()), manager
}

func loggedIn(t *testing.T, srv *backendtest.Server) (*Library, *session.Manager) {
	t.Helper()
	srv.AddUser("neo", "a@b.com", "pw")
	lib, manager := newTestLibrary(t, srv)
	_, err := manager.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	return lib, manager
}

// recordingCaller counts requests without performing them
type recordingCaller struct {
	calls int
}

func (r *recordingCaller) Call(ctx context.Context, method, endpoint string, body, out any) error {
	r.calls++
	return nil
}

func TestParseListKind(t *testing.T) {
	tests := []struct {
		input   string
		want    ListKind
		wantErr bool
	}{
		{input: "favorites", want: Favorites},
		{input: "watchlist", want: Watchlist},
		{input: "ratings", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseListKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownList)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnonymousIssuesNoRequests(t *testing.T) {
	caller := &recordingCaller{}
	sess := session.New()
	manager := session.NewManager(caller, session.NewMemoryStore(""), sess, zerolog.Nop())
	manager.Bootstrap(context.Background())

	lib := New(caller, sess, zerolog.Nop())
	ctx := context.Background()

	for _, kind := range Kinds {
		_, err := lib.Add(ctx, kind, Entry{MovieID: 42, Title: "X"})
		assert.ErrorIs(t, err, session.ErrNotAuthenticated)
		assert.Equal(t, "please log in to add movies to "+string(kind), err.Error())

		_, err = lib.Remove(ctx, kind, 42)
		assert.ErrorIs(t, err, session.ErrNotAuthenticated)

		_, err = lib.FetchAll(ctx, kind)
		assert.ErrorIs(t, err, session.ErrNotAuthenticated)

		_, _, err = lib.Toggle(ctx, kind, Entry{MovieID: 42, Title: "X"})
		assert.ErrorIs(t, err, session.ErrNotAuthenticated)
		assert.Equal(t, "please log in to update your "+string(kind), err.Error())
	}

	_, err := lib.Rate(ctx, 42, 8, "")
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
	_, err = lib.Ratings(ctx)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
	_, err = lib.Stats(ctx)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	assert.Equal(t, 0, caller.calls)
	assert.Empty(t, lib.Cached(Favorites))
}

func TestAddFetchRemoveScenario(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, manager := loggedIn(t, srv)
	assert.Equal(t, "T1", manager.Session().Token())
	ctx := context.Background()

	_, err := lib.Add(ctx, Favorites, Entry{MovieID: 42, Title: "X"})
	require.NoError(t, err)

	entries, err := lib.FetchAll(ctx, Favorites)
	require.NoError(t, err)
	count := 0
	for _, e := range entries {
		if e.MovieID == 42 {
			count++
		}
	}
	assert.Equal(t, 1, count)

	_, err = lib.Remove(ctx, Favorites, 42)
	require.NoError(t, err)

	entries, err = lib.FetchAll(ctx, Favorites)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, 42, e.MovieID)
	}
}

func TestAddThenRemoveRestoresCache(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)
	ctx := context.Background()

	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			_, err := lib.Add(ctx, kind, Entry{MovieID: 7, Title: "Se7en"})
			require.NoError(t, err)
			_, err = lib.FetchAll(ctx, kind)
			require.NoError(t, err)
			before := lib.Cached(kind)

			_, err = lib.Add(ctx, kind, Entry{MovieID: 42, Title: "X", PosterPath: "/x.jpg"})
			require.NoError(t, err)
			assert.True(t, lib.Contains(kind, 42))
			assert.Len(t, lib.Cached(kind), len(before)+1)

			_, err = lib.Remove(ctx, kind, 42)
			require.NoError(t, err)
			assert.False(t, lib.Contains(kind, 42))
			assert.Equal(t, ids(before), ids(lib.Cached(kind)))
		})
	}
}

func TestAddSetsAddedAt(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	lib.now = func() time.Time { return fixed }

	_, err := lib.Add(context.Background(), Watchlist, Entry{MovieID: 1, Title: "Alien"})
	require.NoError(t, err)

	cached := lib.Cached(Watchlist)
	require.Len(t, cached, 1)
	assert.Equal(t, fixed, cached[0].AddedAt)
}

func TestAddFailureLeavesCache(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)
	ctx := context.Background()

	_, err := lib.Add(ctx, Favorites, Entry{MovieID: 42, Title: "X"})
	require.NoError(t, err)

	// The client does not deduplicate; the backend rejects the second add.
	_, err = lib.Add(ctx, Favorites, Entry{MovieID: 42, Title: "X"})
	require.Error(t, err)
	assert.Equal(t, "Movie already in favorites", err.Error())
	assert.Equal(t, 2, srv.Count("POST /users/favorites"))
	assert.Len(t, lib.Cached(Favorites), 1)

	srv.Fail("POST /users/favorites", http.StatusInternalServerError)
	_, err = lib.Add(ctx, Favorites, Entry{MovieID: 99, Title: "Y"})
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.False(t, lib.Contains(Favorites, 99))
}

func TestRemoveMissing(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)

	_, err := lib.Remove(context.Background(), Watchlist, 404)
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.IsNotFound())
	assert.Equal(t, "Movie not found in watchlist", err.Error())
}

func TestInvalidInput(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)
	ctx := context.Background()

	_, err := lib.Add(ctx, ListKind("ratings"), Entry{MovieID: 1})
	assert.ErrorIs(t, err, ErrUnknownList)

	_, err = lib.Add(ctx, Favorites, Entry{MovieID: 0})
	assert.ErrorIs(t, err, ErrInvalidMovie)

	_, err = lib.Remove(ctx, Favorites, -1)
	assert.ErrorIs(t, err, ErrInvalidMovie)

	for _, rating := range []float64{0, 10.5, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = lib.Rate(ctx, 1, rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	assert.Equal(t, 0, srv.Count("POST /users/favorites"))
	assert.Equal(t, 0, srv.Count("POST /users/ratings"))
}

func TestToggle(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)
	ctx := context.Background()
	entry := Entry{MovieID: 603, Title: "The Matrix"}

	inList, resp, err := lib.Toggle(ctx, Favorites, entry)
	require.NoError(t, err)
	assert.True(t, inList)
	assert.Equal(t, "Movie added to favorites", resp.Message)
	assert.Equal(t, 1, srv.Count("GET /users/favorites"), "first toggle loads the list")

	inList, resp, err = lib.Toggle(ctx, Favorites, entry)
	require.NoError(t, err)
	assert.False(t, inList)
	assert.Equal(t, "Movie removed from favorites", resp.Message)
	assert.Equal(t, 1, srv.Count("GET /users/favorites"))
}

func TestRateAndRatings(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)
	ctx := context.Background()

	resp, err := lib.Rate(ctx, 603, 9, "Whoa.")
	require.NoError(t, err)
	assert.Equal(t, "Rating saved", resp.Message)

	// A second submission overwrites server-side.
	_, err = lib.Rate(ctx, 603, 10, "")
	require.NoError(t, err)

	ratings, err := lib.Ratings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 603, ratings[0].MovieID)
	assert.Equal(t, 10.0, ratings[0].Rating)
}

func TestStats(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, _ := loggedIn(t, srv)
	ctx := context.Background()

	_, err := lib.Add(ctx, Favorites, Entry{MovieID: 1, Title: "A"})
	require.NoError(t, err)
	_, err = lib.Add(ctx, Favorites, Entry{MovieID: 2, Title: "B"})
	require.NoError(t, err)
	_, err = lib.Add(ctx, Watchlist, Entry{MovieID: 3, Title: "C"})
	require.NoError(t, err)
	_, err = lib.Rate(ctx, 1, 7, "")
	require.NoError(t, err)

	stats, err := lib.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Favorites: 2, Watchlist: 1, Ratings: 1}, stats)

	// A failing count degrades to zero without affecting the others.
	srv.Fail("GET /users/watchlist", http.StatusInternalServerError)
	stats, err = lib.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Favorites: 2, Watchlist: 0, Ratings: 1}, stats)
}

func TestFetchAll_MissingField(t *testing.T) {
	caller := callerFunc(func(ctx context.Context, method, endpoint string, body, out any) error {
		return nil
	})
	lib := New(caller, authenticated("1"), zerolog.Nop())

	_, err := lib.FetchAll(context.Background(), Favorites)
	var decodeErr *api.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.False(t, lib.Loaded(Favorites))
}

func TestCacheFollowsUser(t *testing.T) {
	identity := authenticated("1")
	caller := callerFunc(func(ctx context.Context, method, endpoint string, body, out any) error {
		return nil
	})
	lib := New(caller, identity, zerolog.Nop())

	_, err := lib.Add(context.Background(), Favorites, Entry{MovieID: 42})
	require.NoError(t, err)
	assert.True(t, lib.Contains(Favorites, 42))

	identity.id = "2"
	assert.False(t, lib.Contains(Favorites, 42), "another user's copy is discarded")

	identity.id = "1"
	assert.False(t, lib.Contains(Favorites, 42))
}

func TestLogoutDropsCache(t *testing.T) {
	srv := backendtest.New()
	defer srv.Close()
	lib, manager := loggedIn(t, srv)

	_, err := lib.Add(context.Background(), Favorites, Entry{MovieID: 42, Title: "X"})
	require.NoError(t, err)

	manager.Logout()
	assert.Empty(t, lib.Cached(Favorites))
	assert.False(t, lib.Loaded(Favorites))
}

type callerFunc func(ctx context.Context, method, endpoint string, body, out any) error

func (f callerFunc) Call(ctx context.Context, method, endpoint string, body, out any) error {
	return f(ctx, method, endpoint, body, out)
}

type fakeIdentity struct {
	id string
}

func authenticated(id string) *fakeIdentity {
	return &fakeIdentity{id: id}
}

func (f *fakeIdentity) IsAuthenticated() bool { return f.id != "" }

func (f *fakeIdentity) User() *session.User {
	if f.id == "" {
		return nil
	}
	return &session.User{ID: f.id}
}

func ids(entries []Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.MovieID)
	}
	return out
}
