package middleware

import "net/http"

// SecurityHeaders sets response headers that harden browser handling of API responses.
type SecurityHeaders struct {
	hsts bool
}

// NewSecurityHeaders creates the middleware. hsts enables Strict-Transport-Security
// and should only be set when the server terminates TLS.
func NewSecurityHeaders(hsts bool) *SecurityHeaders {
	return &SecurityHeaders{hsts: hsts}
}

func (m *SecurityHeaders) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		if m.hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}
