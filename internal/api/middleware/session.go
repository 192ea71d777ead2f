package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/olympicapp/country-comments/internal/core/ports"
	"github.com/olympicapp/country-comments/internal/session"
)

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Store      ports.SessionStore
	Codec      *session.CookieCodec
	CookieName string
	TTL        time.Duration
	// Secure marks the cookie as HTTPS-only.
	Secure bool
	Log    zerolog.Logger
}

// Session resolves the signed session cookie into a session.Handle and
// injects it into the context under session.ContextKey.
//
// The response cookie is written just before the headers go out. An
// authenticated session gets a cookie with a fresh Max-Age on every request,
// matching the store TTL that Touch extends. Logout, a cookie that failed
// verification and a cookie whose session is gone get an expired cookie.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var in cookieState
			token := ""
			if ck, err := c.Cookie(cfg.CookieName); err == nil && ck.Value != "" {
				if token, err = cfg.Codec.Decode(ck.Value); err != nil {
					cfg.Log.Debug().Str("path", c.Path()).Msg("rejected session cookie")
					token = ""
					in.rejected = true
				}
			}

			handle := session.NewHandle(cfg.Store, token, cfg.TTL)
			if token != "" {
				in.presented = true
				if err := cfg.Store.Touch(ctx, token, cfg.TTL); err != nil {
					cfg.Log.Warn().Err(err).Msg("failed to refresh session ttl")
				}
			}
			c.Set(session.ContextKey, handle)

			c.Response().Before(func() {
				writeSessionCookie(c, cfg, handle, in)
			})

			return next(c)
		}
	}
}

// cookieState records what the request carried.
type cookieState struct {
	presented bool // a verified cookie
	rejected  bool // a cookie that failed verification
}

func writeSessionCookie(c echo.Context, cfg SessionConfig, h *session.Handle, in cookieState) {
	if h.Cleared() {
		c.SetCookie(sessionCookie(cfg, "", -1))
		return
	}
	if !h.Rotated() && !in.presented {
		return
	}

	attrs, err := h.Attributes(c.Request().Context())
	if err != nil {
		// Keep the client's cookie while the store is unreachable.
		cfg.Log.Warn().Err(err).Msg("session cookie not refreshed")
		return
	}
	if !attrs.Authenticated() {
		if in.presented || in.rejected {
			c.SetCookie(sessionCookie(cfg, "", -1))
		}
		return
	}

	value, err := cfg.Codec.Encode(h.Token())
	if err != nil {
		cfg.Log.Error().Err(err).Msg("failed to sign session cookie")
		return
	}
	c.SetCookie(sessionCookie(cfg, value, int(cfg.TTL.Seconds())))
}

func sessionCookie(cfg SessionConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
