package session

import (
	"strings"
	"time"
)

// User is the identity record the backend returns from verify, login,
// register and profile updates.
type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Profile     Profile     `json:"profile"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Profile holds the user's editable personal details
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

// Preferences holds the user's discovery preferences
type Preferences struct {
	FavoriteGenres []int `json:"favoriteGenres"`
}

// DisplayName returns the best available name for the user
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.Profile.FirstName + " " + u.Profile.LastName); name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// ProfileData is the body of a profile update.
type ProfileData struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Bio            string `json:"bio"`
	FavoriteGenres []int  `json:"favoriteGenres"`
}

// ProfileDataFrom seeds an update form from the current identity.
func ProfileDataFrom(u *User) ProfileData {
	if u == nil {
		return ProfileData{FavoriteGenres: []int{}}
	}
	genres := make([]int, len(u.Preferences.FavoriteGenres))
	copy(genres, u.Preferences.FavoriteGenres)
	return ProfileData{
		FirstName:      u.Profile.FirstName,
		LastName:       u.Profile.LastName,
		Bio:            u.Profile.Bio,
		FavoriteGenres: genres,
	}
}

// Credentials is the body of a login request
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of a registration request
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// authResponse is returned by login and register
type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// userResponse is returned by verify and profile updates
type userResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}
