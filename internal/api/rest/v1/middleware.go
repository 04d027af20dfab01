package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/ratelimit"
)

const claimsContextKey = "auth-claims"

// sensitiveClearanceLevel guards usage counters, mitigation playbooks and the
// platform status snapshot.
const sensitiveClearanceLevel = 3

// AuthRequired verifies the Authorization bearer token and stores the decoded
// claims on the request context.
func AuthRequired(auth users.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// claimsFromContext returns the claims stored by AuthRequired. The second
// return is false on routes that skipped authentication.
func claimsFromContext(c *gin.Context) (*users.TokenClaims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*users.TokenClaims)
	return claims, ok
}

// hasSensitiveClearance reports whether the caller may see sensitive response
// fields.
func hasSensitiveClearance(c *gin.Context) bool {
	claims, ok := claimsFromContext(c)
	return ok && claims.QuantumClearanceLevel >= sensitiveClearanceLevel
}

// RequireRole rejects callers whose role does not match.
func RequireRole(role users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if claims.Role != role {
			abortError(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

// RequireClearance rejects callers below the given quantum clearance level.
func RequireClearance(min int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if claims.QuantumClearanceLevel < min {
			abortError(c, http.StatusForbidden, "insufficient quantum clearance level")
			return
		}
		c.Next()
	}
}

// RateLimit enforces the per-client token bucket for the operation class.
func RateLimit(limiter *ratelimit.Limiter, class ratelimit.Class) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP(), class) {
			abortError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
