package v1

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/homebudget/backend/internal/models"
	ez_uuid "github.com/homebudget/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Amount is a money value. It is always rendered with two decimal places so
// that a value reads the same in every response.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}

// Pagination describes one page of a paginated list.
type Pagination struct {
	Page     int   `json:"page" example:"1"`      // The current page, starting at 1
	Pages    int   `json:"pages" example:"3"`     // Number of pages, at least 1
	PageSize int   `json:"pageSize" example:"20"` // Maximum number of items per page
	Count    int64 `json:"count" example:"47"`    // Total number of items
}

// User is the public representation of a user.
type User struct {
	ID       uuid.UUID `json:"id" example:"7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"`
	Username string    `json:"username" example:"jane"`
	Avatar   string    `json:"avatar" example:"/static/avatars/default.png"` // The avatar of the user or the default avatar
}

func (co Controller) newUser(model models.User) User {
	return User{
		ID:       model.ID,
		Username: model.Username,
		Avatar:   model.AvatarOr(co.DefaultAvatarURL),
	}
}

func (co Controller) newUsers(list []models.User) []User {
	users := make([]User, 0, len(list))
	for _, m := range list {
		users = append(users, co.newUser(m))
	}
	return users
}

type UserListResponse struct {
	Data []User `json:"data"` // List of users
}
