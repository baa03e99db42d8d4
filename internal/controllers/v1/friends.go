package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
	"gorm.io/gorm"
)

// FriendsEditable lists the users to add to or remove from the friends list.
type FriendsEditable struct {
	FriendsList []uuid.UUID `json:"friendsList" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"` // IDs of users
}

// RegisterFriendsRoutes registers the routes for the friends list of the
// authenticated user with the RouterGroup that is passed.
func (co Controller) RegisterFriendsRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsFriends)
		r.GET("", co.GetFriends)
		r.PATCH("", co.AddFriends)
	}

	// Removal
	{
		r.OPTIONS("/remove", co.OptionsFriendsRemove)
		r.PATCH("/remove", co.RemoveFriends)
	}
}

// OptionsFriends returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Friends
//	@Security		BearerAuth
//	@Success		204
//	@Router			/v1/friends [options]
func (co Controller) OptionsFriends(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// OptionsFriendsRemove returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Friends
//	@Security		BearerAuth
//	@Success		204
//	@Router			/v1/friends/remove [options]
func (co Controller) OptionsFriendsRemove(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// GetFriends returns the friends list
//
//	@Summary		List friends
//	@Description	Returns the friends of the authenticated user ordered by username
//	@Tags			Friends
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserListResponse
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Router			/v1/friends [get]
func (co Controller) GetFriends(c *gin.Context) {
	co.changeFriends(c, nil)
}

// AddFriends adds users to the friends list
//
//	@Summary		Add friends
//	@Description	Adds users to the friends list of the authenticated user. Users on the list already are ignored. Friendship is not mutual.
//	@Tags			Friends
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	UserListResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			friends	body		FriendsEditable	true	"Friends"
//	@Router			/v1/friends [patch]
func (co Controller) AddFriends(c *gin.Context) {
	var editable FriendsEditable
	if err := httputil.BindData(c, &editable); err != nil {
		writeError(c, err)
		return
	}

	co.changeFriends(c, func(tx *gorm.DB, friends models.Friends) error {
		return friends.Add(tx, editable.FriendsList)
	})
}

// RemoveFriends removes users from the friends list
//
//	@Summary		Remove friends
//	@Description	Removes users from the friends list of the authenticated user. Users not on the list are ignored.
//	@Tags			Friends
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	UserListResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			friends	body		FriendsEditable	true	"Friends"
//	@Router			/v1/friends/remove [patch]
func (co Controller) RemoveFriends(c *gin.Context) {
	var editable FriendsEditable
	if err := httputil.BindData(c, &editable); err != nil {
		writeError(c, err)
		return
	}

	co.changeFriends(c, func(tx *gorm.DB, friends models.Friends) error {
		return friends.Remove(tx, editable.FriendsList)
	})
}

// changeFriends applies change to the friends list of the caller and
// responds with the resulting list. A nil change only lists.
func (co Controller) changeFriends(c *gin.Context, change func(*gorm.DB, models.Friends) error) {
	var users []models.User
	err := co.DB.Transaction(func(tx *gorm.DB) error {
		friends, err := models.FriendsOf(tx, caller(c).ID)
		if err != nil {
			return err
		}

		if change != nil {
			err = change(tx, friends)
			if err != nil {
				return err
			}
		}

		users, err = friends.Users(tx)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserListResponse{Data: co.newUsers(users)})
}
