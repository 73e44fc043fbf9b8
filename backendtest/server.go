// Package backendtest runs an in-memory movie backend for tests.
//
// The server speaks the same JSON contract as the real backend under an /api
// prefix: auth, profile, favorites, watchlist, ratings and the read-only
// catalog. Tokens are issued as "T1", "T2", ... in login order so tests can
// assert on them.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// User mirrors the backend's user representation
type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Profile     Profile     `json:"profile"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

type Preferences struct {
	FavoriteGenres []int `json:"favoriteGenres"`
}

// Entry is a favorites or watchlist item
type Entry struct {
	MovieID    int       `json:"movieId"`
	Title      string    `json:"title"`
	PosterPath string    `json:"posterPath,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Rating is a stored rating
type Rating struct {
	MovieID   int       `json:"movieId"`
	Rating    float64   `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Movie is a catalog movie. Details fields are omitted from list payloads
// only by convention; the fake returns the same shape everywhere.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
	Tagline     string  `json:"tagline,omitempty"`
	Runtime     int     `json:"runtime,omitempty"`
}

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type account struct {
	user      User
	password  string
	favorites []Entry
	watchlist []Entry
	ratings   []Rating
}

// Server is the fake backend
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]*account // by email
	tokens    map[string]string   // token -> email
	issued    int
	requests  []string
	failures  map[string]int
	movies    []Movie
	genres    []Genre
	similar   map[int][]Movie
	catalogue map[string][]Movie
}

// New starts a fake backend. Close it when done.
func New() *Server {
	s := &Server{
		accounts:  make(map[string]*account),
		tokens:    make(map[string]string),
		failures:  make(map[string]int),
		similar:   make(map[int][]Movie),
		catalogue: make(map[string][]Movie),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/verify", s.authed(s.handleVerify))
	mux.HandleFunc("PUT /users/profile", s.authed(s.handleProfile))
	mux.HandleFunc("GET /users/ratings", s.authed(s.handleListRatings))
	mux.HandleFunc("POST /users/ratings", s.authed(s.handleRate))
	mux.HandleFunc("GET /users/{kind}", s.authed(s.handleListEntries))
	mux.HandleFunc("POST /users/{kind}", s.authed(s.handleAddEntry))
	mux.HandleFunc("DELETE /users/{kind}/{id}", s.authed(s.handleRemoveEntry))
	mux.HandleFunc("GET /movies/genres/list", s.handleGenres)
	mux.HandleFunc("GET /movies/search", s.handleSearch)
	mux.HandleFunc("GET /movies/discover/movies", s.handleDiscover)
	mux.HandleFunc("GET /movies/{id}/similar", s.handleSimilar)
	mux.HandleFunc("GET /movies/{id}", s.handleMovie)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", s.record(mux)))
	s.Server = httptest.NewServer(root)
	return s
}

// BaseURL returns the API base URL to configure clients with
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// AddUser registers an account directly
func (s *Server) AddUser(username, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUserLocked(username, email, password, "", "")
}

// IssueToken returns a valid token for email without going through login
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(email)
}

// RevokeToken invalidates a token
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Fail makes the next matching request ("METHOD /path") answer with status
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// SetList seeds a catalog list: popular, top-rated, now-playing or upcoming
func (s *Server) SetList(name string, movies ...Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogue[name] = movies
	for _, m := range movies {
		s.upsertMovieLocked(m)
	}
}

// SetMovies seeds movies for search, discover and detail lookups
func (s *Server) SetMovies(movies ...Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movies {
		s.upsertMovieLocked(m)
	}
}

// SetSimilar seeds similar movies for id
func (s *Server) SetSimilar(id int, movies ...Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.similar[id] = movies
}

// SetGenres seeds the genre list
func (s *Server) SetGenres(genres ...Genre) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genres = genres
}

// Requests returns every request seen as "METHOD /path"
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched route exactly
func (s *Server) Count(route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r == route {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.requests = append(s.requests, route)
		status, fail := s.failures[route]
		if fail {
			delete(s.failures, route)
		}
		s.mu.Unlock()

		if fail {
			writeMessage(w, status, "Injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxAccount func(w http.ResponseWriter, r *http.Request, acc *account)

func (s *Server) authed(h ctxAccount) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		email, ok := s.tokens[token]
		acc := s.accounts[email]
		s.mu.Unlock()

		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		if !ok || acc == nil {
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		h(w, r, acc)
	}
}

func (s *Server) addUserLocked(username, email, password, first, last string) *account {
	acc := &account{
		user: User{
			ID:          strconv.Itoa(len(s.accounts) + 1),
			Username:    username,
			Email:       email,
			Profile:     Profile{FirstName: first, LastName: last},
			Preferences: Preferences{FavoriteGenres: []int{}},
			CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		password:  password,
		favorites: []Entry{},
		watchlist: []Entry{},
		ratings:   []Rating{},
	}
	s.accounts[email] = acc
	return acc
}

func (s *Server) issueLocked(email string) string {
	s.issued++
	token := fmt.Sprintf("T%d", s.issued)
	s.tokens[token] = email
	return token
}

func (s *Server) upsertMovieLocked(m Movie) {
	for i := range s.movies {
		if s.movies[i].ID == m.ID {
			s.movies[i] = m
			return
		}
	}
	s.movies = append(s.movies, m)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
