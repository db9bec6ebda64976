package middleware

import (
	"net/http"

	pnet "paylens/internal/platform/net"
)

// AuthPort is the seam an identity provider implements
type AuthPort interface {
	// Parse returns the caller's user id from the request or an error
	Parse(r *http.Request) (userID string, err error)
}

// Auth resolves the caller identity and stores it on context.
// A nil port passes requests through untouched
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
