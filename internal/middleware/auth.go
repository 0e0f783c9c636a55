package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"safar/internal/auth"
	"safar/internal/directory"
	"safar/internal/policy"
	"safar/internal/repository"
)

const identityContextKey = "callerIdentity"

// Authenticate validates the bearer token and resolves the caller through
// the directory. The resolved identity is the only identity services ever
// see; nothing downstream reads the token again.
func Authenticate(verifier *auth.TokenVerifier, dir *directory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authorization header required"})
			return
		}

		userID, err := verifier.VerifySubject(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})
			return
		}

		caller, err := dir.Identity(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "unknown user"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "identity resolution failed"})
			return
		}

		c.Set(identityContextKey, caller)
		c.Next()
	}
}

// CallerIdentity extracts the resolved caller identity set by Authenticate.
func CallerIdentity(c *gin.Context) (policy.Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return policy.Identity{}, false
	}
	caller, ok := v.(policy.Identity)
	return caller, ok
}
