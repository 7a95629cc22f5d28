package testutil

import (
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer string, roles []string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Roles: roles,
		},
	}
}

// MockAuthMiddleware simulates a validated staff token so protected routes
// can be exercised without a real identity provider.
func MockAuthMiddleware(subject string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", subject)
		c.Set("validated_claims", MockValidatedClaims(subject, "https://test.auth0.com/", roles))
		c.Next()
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, userID string, issuer string, roles []string) {
	claims := MockValidatedClaims(userID, issuer, roles)
	c.Set("user_id", userID)
	c.Set("validated_claims", claims)
}
