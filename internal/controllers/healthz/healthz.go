package healthz

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/homebudget/backend/internal/controllers/v1"
	"github.com/homebudget/backend/internal/httputil"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	r.OPTIONS("", Options)
	r.GET("", Get(db))
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns a handler that pings the database
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Produce		json
//	@Success		204
//	@Router			/healthz [get]
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			v1.WriteError(c, fmt.Errorf("could not get database handle: %w", err))
			return
		}

		err = sqlDB.PingContext(c.Request.Context())
		if err != nil {
			v1.WriteError(c, fmt.Errorf("database is not reachable: %w", err))
			return
		}

		c.Status(http.StatusNoContent)
	}
}
