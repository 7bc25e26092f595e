package auth

import "github.com/gin-gonic/gin"

// contextClaims is the gin context key the JWT middleware stores claims under.
const contextClaims = "auth_claims"

// SetClaims stores validated claims in the request context.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(contextClaims, claims)
}

// ClaimsFrom returns the authenticated claims, if present.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(contextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// MustClaims returns the authenticated claims. Only call behind the JWT
// middleware.
func MustClaims(c *gin.Context) *Claims {
	claims, _ := ClaimsFrom(c)
	return claims
}
