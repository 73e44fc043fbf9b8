// Package media builds poster and profile image URLs for the movie CDN.
package media

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the image CDN root
const DefaultBaseURL = "https://image.tmdb.org/t/p"

// Size is a CDN size token
type Size string

const (
	SizeSmall    Size = "w200"
	SizeMedium   Size = "w300"
	SizeLarge    Size = "w500"
	SizeOriginal Size = "original"
)

// placeholders maps sizes to the dimensions of the fallback image
var placeholders = map[Size][2]int{
	SizeSmall:    {150, 225},
	SizeMedium:   {200, 300},
	SizeLarge:    {300, 450},
	SizeOriginal: {400, 600},
}

// Resolver turns backend image paths into absolute URLs
type Resolver struct {
	baseURL string
}

// NewResolver creates a resolver for baseURL, or DefaultBaseURL when empty
func NewResolver(baseURL string) *Resolver {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{baseURL: baseURL}
}

// ParseSize validates a size token
func ParseSize(s string) (Size, error) {
	size := Size(s)
	if _, ok := placeholders[size]; !ok {
		return "", fmt.Errorf("invalid image size %q (must be w200, w300, w500 or original)", s)
	}
	return size, nil
}

// URL returns the image URL for path at size. An empty path yields the
// placeholder for that size.
func (r *Resolver) URL(path string, size Size) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return Placeholder(size)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.baseURL + "/" + string(size) + path
}

// Placeholder returns the fallback image path for size
func Placeholder(size Size) string {
	dims, ok := placeholders[size]
	if !ok {
		dims = placeholders[SizeLarge]
	}
	return fmt.Sprintf("/api/placeholder/%d/%d", dims[0], dims[1])
}
