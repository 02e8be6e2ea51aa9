// Package cookie writes and clears the session token cookies.
package cookie

import (
	"net/http"
	"time"

	"github.com/dtroode/taskmanager-server/internal/model"
)

const (
	// AccessTokenName is the cookie carrying the access token.
	AccessTokenName = "token"
	// RefreshTokenName is the cookie carrying the refresh token.
	RefreshTokenName = "refreshToken"
)

// Config holds cookie attributes derived from the server configuration.
type Config struct {
	Secure     bool
	Domain     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Jar sets session cookies on responses.
type Jar struct {
	cfg Config
}

func NewJar(cfg Config) *Jar {
	return &Jar{cfg: cfg}
}

// SetTokens writes both token cookies.
func (j *Jar) SetTokens(w http.ResponseWriter, pair model.TokenPair) {
	http.SetCookie(w, j.cookie(AccessTokenName, pair.AccessToken, j.cfg.AccessTTL))
	http.SetCookie(w, j.cookie(RefreshTokenName, pair.RefreshToken, j.cfg.RefreshTTL))
}

// Clear expires both token cookies on the client.
func (j *Jar) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenName, RefreshTokenName} {
		c := j.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (j *Jar) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   j.cfg.Domain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   j.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Read returns the value of the named cookie, or "" when it is absent.
func Read(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
