package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account of the application.
type User struct {
	DefaultModel
	Email        string    `json:"email" gorm:"uniqueIndex" example:"jane@example.com"`
	Username     string    `json:"username" example:"jane"`
	Avatar       string    `json:"avatar" example:"https://example.com/avatars/jane.png"`
	PasswordHash string    `json:"-"`
	RegisteredAt time.Time `json:"registeredAt" example:"2022-04-02T19:28:44.491514Z"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = normalizeName(u.Username)
	u.Avatar = strings.TrimSpace(u.Avatar)

	if err := validateEmail("email", u.Email); err != nil {
		return err
	}

	return validateName("username", u.Username, UsernameMaxLength)
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = tx.NowFunc()
	}

	return u.DefaultModel.BeforeCreate(tx)
}

func (u *User) AfterFind(tx *gorm.DB) error {
	u.RegisteredAt = u.RegisteredAt.In(time.UTC)
	return u.DefaultModel.AfterFind(tx)
}

// AvatarOr returns the avatar of the user or the fallback if none is set.
func (u User) AvatarOr(fallback string) string {
	if u.Avatar == "" {
		return fallback
	}
	return u.Avatar
}

// UserByEmail returns the user with the given email address.
func UserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	return user, err
}

// ExistingUserIDs returns the subset of ids that belong to existing users.
func ExistingUserIDs(db *gorm.DB, ids []uuid.UUID) ([]uuid.UUID, error) {
	existing := make([]uuid.UUID, 0, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	err := db.Model(&User{}).Where("id IN ?", ids).Pluck("id", &existing).Error
	return existing, err
}

// likeEscaper escapes the wildcards of LIKE patterns.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchUsers returns users whose username contains term, ignoring case, or
// whose email address equals term. The result is ordered by username.
func SearchUsers(db *gorm.DB, term string, limit int) ([]User, error) {
	users := make([]User, 0)
	err := db.
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(term))+"%").
		Or("email = ?", strings.ToLower(term)).
		Order("username ASC").
		Limit(limit).
		Find(&users).
		Error

	return users, err
}
