package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
)

// Context keys. respond.Error reads userId and isGuest for its log line.
const (
	userIDKey   = "userId"
	isGuestKey  = "isGuest"
	identityKey = "identity"
)

// GuestPrefix marks user IDs derived from the X-Guest-Id header.
const GuestPrefix = "guest:"

var guestIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var publicPaths = []string{
	"/api/v1/auth/google/",
	"/api/v1/health",
	"/api/v1/plans",
	"/metrics",
}

// TokenVerifier is satisfied by *auth.Signer.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Identity is the caller as resolved by Auth.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	Picture string
	Guest   bool
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		p = strings.TrimSuffix(p, "/")
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Auth resolves the caller from a Bearer session token or, failing that, an
// X-Guest-Id header. Requests with neither are rejected unless the path is
// public. A nil verifier rejects every Bearer token.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		if isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" || verifier == nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			setIdentity(c, Identity{
				UserID:  claims.Subject,
				Email:   claims.Email,
				Name:    claims.Name,
				Picture: claims.Picture,
			})
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		if !guestIDPattern.MatchString(guestID) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid guest id", nil)
			return
		}
		setIdentity(c, Identity{UserID: GuestPrefix + guestID, Guest: true})
		c.Next()
	}
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
	c.Set(userIDKey, id.UserID)
	c.Set(isGuestKey, id.Guest)
}

// RequireUser rejects guest identities with 401 login_required.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		if IsGuest(c) {
			respond.Error(c, http.StatusUnauthorized, "login_required", "sign in to use this feature", nil)
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the caller, or the zero Identity.
func IdentityFromContext(c *gin.Context) Identity {
	if c == nil {
		return Identity{}
	}
	if id, ok := c.Get(identityKey); ok {
		if identity, ok := id.(Identity); ok {
			return identity
		}
	}
	return Identity{UserID: c.GetString(userIDKey), Guest: c.GetBool(isGuestKey)}
}

// IsGuest reports whether the request carries a guest identity.
func IsGuest(c *gin.Context) bool {
	return IdentityFromContext(c).Guest
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return IdentityFromContext(c).UserID
}
