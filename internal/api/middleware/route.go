package middleware

import "net/http"

type routeKey struct{}

// Route records the pattern the mux matched for this request, so Logger can
// label metrics with it even when an inner mux did the matching.
func Route(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route, ok := r.Context().Value(routeKey{}).(*string); ok && r.Pattern != "" {
			*route = r.Pattern
		}
		next.ServeHTTP(w, r)
	})
}
