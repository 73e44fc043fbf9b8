package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// newStaticServer answers every request with the same status and body
func newStaticServer(t *testing.T, status int, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}
