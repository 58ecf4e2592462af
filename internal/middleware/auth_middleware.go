package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAMSGit/sams_api/internal/service"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// AuthMiddleware validates JWT bearer tokens and attaches the caller's
// identity to the request context.
type AuthMiddleware struct {
	authService *service.AuthService
	rateLimiter *InvalidAuthRateLimiter
}

// NewAuthMiddleware constructs a new AuthMiddleware.
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		rateLimiter: NewInvalidAuthRateLimiter(),
	}
}

// Handle returns a Gin middleware that requires a valid, non-revoked token.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		setCaller(c, claims)
		c.Next()
	}
}

// HandleOptional returns a Gin middleware that authenticates the caller when
// credentials are presented but lets anonymous requests through. Presenting
// an invalid token is still rejected.
func (m *AuthMiddleware) HandleOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		setCaller(c, claims)
		c.Next()
	}
}

// RequireStaff returns a Gin middleware that rejects callers without the
// staff flag. It must run after Handle.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("authenticated") {
			utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}
		if !c.GetBool("is_staff") {
			utils.Error(c, 403, "FORBIDDEN", "Staff privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// authenticate extracts and validates the bearer token, returning its claims.
// On failure it writes the error response and aborts.
func (m *AuthMiddleware) authenticate(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		m.handleAuthError(c, "UNAUTHORIZED", "Missing authorization header")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		m.handleAuthError(c, "UNAUTHORIZED", "Invalid authorization header")
		return nil, false
	}

	claims, err := utils.ValidateJWT(parts[1])
	if err != nil {
		m.handleAuthError(c, "INVALID_TOKEN", "Invalid or expired token")
		return nil, false
	}

	revoked, err := m.authService.IsTokenRevoked(c.Request.Context(), claims)
	if err != nil {
		// Fail closed, but a denylist outage is an internal error, not a
		// bad credential, so it bypasses the invalid-auth rate limiter.
		utils.Error(c, 500, "INTERNAL_ERROR", "Unable to verify token")
		c.Abort()
		return nil, false
	}
	if revoked {
		m.handleAuthError(c, "INVALID_TOKEN", "Token has been revoked")
		return nil, false
	}

	return claims, true
}

func (m *AuthMiddleware) handleAuthError(c *gin.Context, code, message string) {
	// Apply rate limit for invalid auth attempts
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, code, message)
	c.Abort()
}

// setCaller stores the authenticated identity in the request context.
func setCaller(c *gin.Context, claims *utils.Claims) {
	c.Set("authenticated", true)
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("is_staff", claims.IsStaff)
	c.Set("is_superuser", claims.IsSuperuser)
	c.Set("claims", claims)
}

// Caller returns the authenticated claims from context, or nil for an
// anonymous request.
func Caller(c *gin.Context) *utils.Claims {
	v, _ := c.Get("claims")
	if v == nil {
		return nil
	}
	return v.(*utils.Claims)
}
