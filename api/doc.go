// Package api provides the HTTP request helper used to talk to the movie backend.
//
// Every request is JSON in and JSON out. When a token source is configured and
// yields a non-empty token, the request carries an "Authorization: Bearer"
// header. The token is read on every request so a login or logout is picked up
// by the next call without rebuilding the client.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := api.NewClient(
//		"http://localhost:5000/api",
//		logger,
//		api.WithTimeout(30*time.Second),
//		api.WithTokenSource(sess.Token),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	var out struct {
//		Favorites []library.Entry `json:"favorites"`
//	}
//	err = client.Call(ctx, http.MethodGet, "/users/favorites", nil, &out)
//
// # Error Handling
//
// Call returns one of three typed errors:
//
//   - NetworkError: the request could not complete
//   - RequestError: the backend answered with a non-success status
//   - DecodeError: a success payload did not match the expected schema
//
// RequestError carries the backend's "message" field when present, otherwise
// a generic fallback:
//
//	var reqErr *api.RequestError
//	if errors.As(err, &reqErr) && reqErr.IsUnauthorized() {
//		// token expired
//	}
package api
