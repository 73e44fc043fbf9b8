package backendtest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	acc := s.addUserLocked(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	token := s.issueLocked(req.Email)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   token,
		"user":    acc.user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	token := s.issueLocked(req.Email)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    acc.user,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"user": acc.user})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, acc *account) {
	var req struct {
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		Bio            string `json:"bio"`
		FavoriteGenres []int  `json:"favoriteGenres"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc.user.Profile = Profile{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Bio:       strings.TrimSpace(req.Bio),
	}
	acc.user.Preferences.FavoriteGenres = req.FavoriteGenres
	if acc.user.Preferences.FavoriteGenres == nil {
		acc.user.Preferences.FavoriteGenres = []int{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    acc.user,
	})
}

func (s *Server) entries(acc *account, kind string) (*[]Entry, bool) {
	switch kind {
	case "favorites":
		return &acc.favorites, true
	case "watchlist":
		return &acc.watchlist, true
	}
	return nil, false
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request, acc *account) {
	kind := r.PathValue("kind")

	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.entries(acc, kind)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{kind: *list})
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request, acc *account) {
	kind := r.PathValue("kind")

	var req Entry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MovieID == 0 {
		writeMessage(w, http.StatusBadRequest, "movieId is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.entries(acc, kind)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}
	for _, e := range *list {
		if e.MovieID == req.MovieID {
			writeMessage(w, http.StatusBadRequest, "Movie already in "+kind)
			return
		}
	}
	req.AddedAt = time.Now().UTC()
	*list = append(*list, req)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Movie added to " + kind,
		kind:      *list,
	})
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request, acc *account) {
	kind := r.PathValue("kind")
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.entries(acc, kind)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}
	for i, e := range *list {
		if e.MovieID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Movie removed from " + kind,
				kind:      *list,
			})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Movie not found in "+kind)
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request, acc *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"ratings": acc.ratings})
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request, acc *account) {
	var req Rating
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MovieID == 0 {
		writeMessage(w, http.StatusBadRequest, "movieId is required")
		return
	}
	if req.Rating < 1 || req.Rating > 10 {
		writeMessage(w, http.StatusBadRequest, "Rating must be between 1 and 10")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	req.CreatedAt = time.Now().UTC()
	replaced := false
	for i := range acc.ratings {
		if acc.ratings[i].MovieID == req.MovieID {
			acc.ratings[i] = req
			replaced = true
		}
	}
	if !replaced {
		acc.ratings = append(acc.ratings, req)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Rating saved",
		"rating":  req,
	})
}

func pageOf(movies []Movie, r *http.Request) map[string]any {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	if movies == nil {
		movies = []Movie{}
	}
	return map[string]any{
		"page":          page,
		"results":       movies,
		"total_pages":   1,
		"total_results": len(movies),
	}
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	genres := s.genres
	if genres == nil {
		genres = []Genre{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("query"))

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Movie
	for _, m := range s.movies {
		if strings.Contains(strings.ToLower(m.Title), query) {
			out = append(out, m)
		}
	}
	writeJSON(w, http.StatusOK, pageOf(out, r))
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	genre, _ := strconv.Atoi(q.Get("with_genres"))
	year := q.Get("primary_release_year")

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Movie
	for _, m := range s.movies {
		if genre != 0 && !containsInt(m.GenreIDs, genre) {
			continue
		}
		if year != "" && !strings.HasPrefix(m.ReleaseDate, year) {
			continue
		}
		out = append(out, m)
	}
	writeJSON(w, http.StatusOK, pageOf(out, r))
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	// List endpoints share the /movies/{id} shape.
	name := r.PathValue("id")
	s.mu.Lock()
	list, isList := s.catalogue[name]
	s.mu.Unlock()
	if isList || isListName(name) {
		writeJSON(w, http.StatusOK, pageOf(list, r))
		return
	}

	id, err := strconv.Atoi(name)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.ID == id {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Movie not found")
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf(s.similar[id], r))
}

func isListName(name string) bool {
	switch name {
	case "popular", "top-rated", "now-playing", "upcoming":
		return true
	}
	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
