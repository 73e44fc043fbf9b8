package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		path     string
		size     Size
		expected string
	}{
		{
			name:     "poster",
			path:     "/abc.jpg",
			size:     SizeLarge,
			expected: "https://image.tmdb.org/t/p/w500/abc.jpg",
		},
		{
			name:     "missing leading slash",
			path:     "abc.jpg",
			size:     SizeMedium,
			expected: "https://image.tmdb.org/t/p/w300/abc.jpg",
		},
		{
			name:     "custom base",
			baseURL:  "https://cdn.example.com/img/",
			path:     "/abc.jpg",
			size:     SizeSmall,
			expected: "https://cdn.example.com/img/w200/abc.jpg",
		},
		{
			name:     "placeholder large",
			path:     "",
			size:     SizeLarge,
			expected: "/api/placeholder/300/450",
		},
		{
			name:     "placeholder profile",
			path:     "  ",
			size:     SizeSmall,
			expected: "/api/placeholder/150/225",
		},
		{
			name:     "placeholder original",
			size:     SizeOriginal,
			expected: "/api/placeholder/400/600",
		},
		{
			name:     "placeholder unknown size",
			size:     Size("w92"),
			expected: "/api/placeholder/300/450",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.baseURL)
			assert.Equal(t, tt.expected, r.URL(tt.path, tt.size))
		})
	}
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize("w300")
	require.NoError(t, err)
	assert.Equal(t, SizeMedium, size)

	_, err = ParseSize("w92")
	require.Error(t, err)
}
