package httpx

import "net/http"

// Limit rejects requests with 503 once limit requests are in flight.
// limit <= 0 disables it.
func Limit(limit int, next http.Handler) http.Handler {
	if limit <= 0 {
		return next
	}
	sem := make(chan struct{}, limit)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
			next.ServeHTTP(w, r)
		default:
			WriteProblem(w, http.StatusServiceUnavailable, "overloaded", "too many concurrent requests")
		}
	})
}
