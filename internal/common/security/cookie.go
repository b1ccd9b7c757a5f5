package security

import (
	"net/http"

	"quizhub/internal/platform/config"
)

// AuthCookieName is the cookie jwtauth.Verifier searches when no
// Authorization header is present.
const AuthCookieName = "jwt"

func SetAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   config.AppConfig.CookieSecure,
		MaxAge:   int(config.AppConfig.JWTExp.Seconds()),
	})
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   config.AppConfig.CookieSecure,
		MaxAge:   -1,
	})
}
