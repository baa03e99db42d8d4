package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
)

// Profile is the full representation of the authenticated user.
type Profile struct {
	ID           uuid.UUID `json:"id" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"`
	Email        string    `json:"email" example:"jane@example.com"`
	Username     string    `json:"username" example:"jane"`
	Avatar       string    `json:"avatar" example:"/static/avatars/default.png"` // The avatar of the user or the default avatar
	RegisteredAt time.Time `json:"registeredAt" example:"2022-04-02T19:28:44.491514Z"`
}

func (co Controller) newProfile(model models.User) Profile {
	return Profile{
		ID:           model.ID,
		Email:        model.Email,
		Username:     model.Username,
		Avatar:       model.AvatarOr(co.DefaultAvatarURL),
		RegisteredAt: model.RegisteredAt,
	}
}

type ProfileResponse struct {
	Data Profile `json:"data"` // Data for the user
}

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsUserList)
		r.GET("", co.SearchUsers)
	}

	{
		r.OPTIONS("/profile", co.OptionsProfile)
		r.GET("/profile", co.GetProfile)
	}
}

// OptionsUserList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Security		BearerAuth
//	@Success		204
//	@Router			/v1/users [options]
func (co Controller) OptionsUserList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsProfile returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Security		BearerAuth
//	@Success		204
//	@Router			/v1/users/profile [options]
func (co Controller) OptionsProfile(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetProfile returns the authenticated user
//
//	@Summary		Get profile
//	@Description	Returns the profile of the authenticated user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Failure		401	{object}	httpError
//	@Router			/v1/users/profile [get]
func (co Controller) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, ProfileResponse{Data: co.newProfile(caller(c))})
}

// SearchUsers searches for users
//
//	@Summary		Search users
//	@Description	Returns users whose username contains the search term, ignoring case, or whose email address equals it. Ordered by username.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200		{object}	UserListResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			search	query		string	true	"Search term"
//	@Router			/v1/users [get]
func (co Controller) SearchUsers(c *gin.Context) {
	term := strings.TrimSpace(c.Query("search"))
	if term == "" {
		writeError(c, models.Required("search"))
		return
	}

	users, err := models.SearchUsers(co.DB, term, co.PageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserListResponse{Data: co.newUsers(users)})
}
