package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nex-terminal-be/pkg/session"
)

// SessionMiddleware is the edge layer that issues the anonymous session
// cookie when absent. The identifier is set on the response only: handlers
// on this request still see a pending session, the identifier becomes
// visible on the client's next request. The orchestration layer never
// creates identifiers itself.
func SessionMiddleware(secure bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Cookies(session.CookieName) == "" {
			ctx.Cookie(&fiber.Cookie{
				Name:     session.CookieName,
				Value:    uuid.NewString(),
				MaxAge:   int(session.CookieMaxAge.Seconds()),
				Path:     "/",
				Secure:   secure,
				HTTPOnly: false, // client-side code reads the identifier
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return ctx.Next()
	}
}

// CurrentSession reads the session identifier from the inbound request.
func CurrentSession(ctx *fiber.Ctx) session.Session {
	return session.FromCookie(ctx.Cookies(session.CookieName))
}
