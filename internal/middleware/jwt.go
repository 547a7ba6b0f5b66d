package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/services"
)

const claimsKey = "claims"

var errMissingBearer = errors.New("authorization header must be Bearer <token>")

// Auth rejects requests without a valid, unrevoked bearer token and stores
// the token claims on the context for ClaimsFrom.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokStr, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": apperr.Message(apperr.ErrUnauthenticated)})
			return
		}
		claims, err := tokens.Validate(c.Request.Context(), tokStr)
		if err != nil {
			if !apperr.IsDomain(err) {
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"message": apperr.Message(err)})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errMissingBearer
	}
	return strings.TrimSpace(parts[1]), nil
}

// ClaimsFrom returns the claims Auth stored on the context.
func ClaimsFrom(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
