package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/3mfound/admin-gateway/src/session"
)

const (
	// LoginPath is where unauthenticated navigation ends up.
	LoginPath = "/login"
	// LandingPath is the default protected page after login.
	LandingPath = "/"

	authPrefix   = "/auth"
	staticPrefix = "/static/"
)

// RouteClass is the static classification of a request path.
type RouteClass int

const (
	// RouteExcluded paths serve assets and are never evaluated by the guard.
	RouteExcluded RouteClass = iota
	// RoutePublic paths are reachable without a session.
	RoutePublic
	// RouteProtected covers everything else.
	RouteProtected
)

// ClassifyPath evaluates the static route predicate. Public paths are the
// login page and the auth-flow segment (callback and friends); static assets
// and the favicon are excluded outright.
func ClassifyPath(path string) RouteClass {
	if strings.HasPrefix(path, staticPrefix) || path == "/favicon.ico" || path == "/health" {
		return RouteExcluded
	}
	if path == LoginPath || strings.HasPrefix(path, authPrefix) {
		return RoutePublic
	}
	return RouteProtected
}

// Decision is the edge guard's verdict for a request.
type Decision int

const (
	DecisionPass Decision = iota
	DecisionRedirectLogin
	DecisionRedirectLanding
)

// Decide is the whole edge guard as a pure function: path class plus cookie
// presence in, verdict out. Identical inputs always yield identical outcomes.
func Decide(class RouteClass, hasCookie bool) Decision {
	switch {
	case class == RouteExcluded:
		return DecisionPass
	case class == RoutePublic && hasCookie:
		return DecisionRedirectLanding
	case class == RouteProtected && !hasCookie:
		return DecisionRedirectLogin
	}
	return DecisionPass
}

// EdgeGuard intercepts every request before any handler runs. It sees only
// the request path and the sessionToken cookie; the durable store is not
// available at this layer.
func EdgeGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.CookieName)

		switch Decide(ClassifyPath(c.Request.URL.Path), token != "") {
		case DecisionRedirectLogin:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
		case DecisionRedirectLanding:
			c.Redirect(http.StatusFound, LandingPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// RequireSession is the second, authoritative guard on protected pages. It
// resolves the cookie token against the durable store; a cookie whose store
// entry is gone gets expired on the way out so the edge guard and this one
// cannot keep disagreeing (the redirect-loop case).
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		sess, err := store.Get(c.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if sess == nil {
			store.ExpireCookie(c)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Set("user", sess.User)

		c.Next()
	}
}
