package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/httpx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

const SessionCookieName = catalogapi.SessionCookieName

type ctxKey int

const (
	ctxKeyPrincipal ctxKey = iota
	ctxKeySession
)

// principal returns the authenticated caller, or the zero User for
// anonymous requests. Services treat the zero User as anonymous.
func principal(ctx context.Context) domain.User {
	u, _ := ctx.Value(ctxKeyPrincipal).(domain.User)
	return u
}

func currentSession(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(ctxKeySession).(domain.Session)
	return s, ok
}

// loadSession resolves the session cookie, when there is one, into the
// request principal. A stale cookie is cleared and the request continues
// anonymously; routes that need a user reject it in requireSession.
func (r *Router) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		c, err := req.Cookie(SessionCookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, req)
			return
		}

		ctx := req.Context()
		u, sess, err := r.AuthService.Authenticate(ctx, c.Value)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				clearSessionCookie(w, r.CookieSecure)
			} else {
				slogx.FromContext(ctx).Error("failed to resolve session", "err", err)
			}
			next.ServeHTTP(w, req)
			return
		}

		ctx = context.WithValue(ctx, ctxKeyPrincipal, u)
		ctx = context.WithValue(ctx, ctxKeySession, sess)
		ctx = httpx.WithUserID(ctx, u.ID)
		ctx = slogx.WithUserID(ctx, u.ID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requireSession rejects anonymous requests with 401.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal(r.Context()).ID == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
