// Package v1 implements the handlers for the v1 API.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/auth"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all v1 handlers.
type Controller struct {
	DB               *gorm.DB
	Tokens           *auth.JWTManager
	PageSize         int
	DefaultAvatarURL string
}

// caller returns the authenticated user. The authentication middleware
// sets it for every route that needs it.
func caller(c *gin.Context) models.User {
	return c.MustGet(string(models.ContextUser)).(models.User)
}

// bindID parses the id URI parameter.
func bindID(c *gin.Context) (uuid.UUID, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return uri.ID.UUID, nil
}

// activeBudget loads a budget that has not been marked as deleted. Deleted
// budgets are only reachable for updates and deletion by their creator.
func activeBudget(tx *gorm.DB, id uuid.UUID) (models.Budget, error) {
	budget, err := models.FindBudget(tx, id)
	if err != nil {
		return models.Budget{}, err
	}

	if budget.Deleted {
		return models.Budget{}, models.NotFound("budget")
	}

	return budget, nil
}
