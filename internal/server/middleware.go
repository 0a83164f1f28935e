package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	obscontext "github.com/skillshare/skillshare/internal/observability/context"
)

const contextUserKey = "current_user"

// bearerToken pulls the session token out of the Authorization header. The
// second return reports whether a header was present at all, so callers can
// tell an absent token apart from a malformed one.
func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthRequired resolves the bearer token to an account and rejects the
// request when that fails. The resolved account is stored on the context for
// handlers and role gates downstream.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			AbortWithError(c, authdomain.ErrTokenMissing)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		s.setCurrentUser(c, user)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when one is supplied but lets the
// request through either way. Handlers see an anonymous request when the
// token is absent or unusable.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if present && token != "" {
			if user, err := s.authsvc.Authenticate(c.Request.Context(), token); err == nil {
				s.setCurrentUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route on the authenticated account's role. It must run
// after AuthRequired.
func (s *Server) RequireRole(roles ...authdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			AbortWithError(c, authdomain.ErrAuthenticationRequired)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, authdomain.ErrInsufficientRole)
	}
}

func (s *Server) setCurrentUser(c *gin.Context, user *authdomain.User) {
	c.Set(contextUserKey, user)
	ctx := obscontext.WithUserID(c.Request.Context(), user.ID.String())
	c.Request = c.Request.WithContext(ctx)
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	return user, ok && user != nil
}
