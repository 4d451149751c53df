package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/models"
)

// contextOwner is the gin context key under which the authenticated owner id
// is stored.
const contextOwner = "owner"

// Authenticate extracts the authenticated owner id from the request.
//
// The token is opaque to the backend, the collaborator in front of it is
// responsible for issuing one per user. Requests without a valid token are
// rejected before any handler runs.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(token, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, newHTTPError(models.ErrUnauthorized))
			return
		}

		id, err := uuid.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, newHTTPError(models.ErrUnauthorized))
			return
		}

		c.Set(contextOwner, id)
		c.Next()
	}
}

// owner returns the authenticated owner id for the request. When no owner is
// set, the request is answered with a 401 and false is returned.
func owner(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(contextOwner)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, newHTTPError(models.ErrUnauthorized))
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, newHTTPError(models.ErrUnauthorized))
		return uuid.Nil, false
	}

	return id, true
}
