package middleware

import (
	"net/http"
	"time"

	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/pkg/config"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
	"github.com/bautizosmaitte/storefront-api/pkg/session"
)

// Session identifies the anonymous visitor behind each request. A valid
// session cookie is reused; a missing or invalid one mints a fresh guest
// session and sets the cookie on the response. Cart and favorites state is
// namespaced by the resulting session id.
func Session(cfg config.SessionConfig, secureCookies bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sid := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				if claims, err := session.Parse(cfg, cookie.Value); err == nil {
					sid = claims.SessionID
				} else if logg != nil {
					logg.Warn(ctx, "replacing invalid session cookie: "+err.Error())
				}
			}

			if sid == "" {
				token, newSID, err := session.Mint(cfg, time.Now(), "")
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session"))
					return
				}
				sid = newSID
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL / time.Second),
					HttpOnly: true,
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = withSessionID(ctx, sid)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
