package auth

import (
	"errors"
	"fmt"

	"github.com/homebudget/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const PasswordMinLength = 8

var (
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", PasswordMinLength)
)

// Register creates a user with a bcrypt hash of the password.
func Register(db *gorm.DB, email, username, password string) (models.User, error) {
	if len(password) < PasswordMinLength {
		return models.User{}, models.ValidationError{Field: "password", Code: models.CodeMinLength, Message: ErrWeakPassword.Error()}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}

	err = db.Create(&user).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// dummyHash is compared against when no user has the email address, so that
// unknown and known addresses take the same time to reject.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy password"), bcrypt.DefaultCost)

var compareHash = bcrypt.CompareHashAndPassword

// Authenticate verifies the email and password, returning the user if they match.
func Authenticate(db *gorm.DB, email, password string) (models.User, error) {
	user, err := models.UserByEmail(db, email)
	if errors.Is(err, models.ErrResourceNotFound) {
		_ = compareHash(dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	} else if err != nil {
		return models.User{}, err
	}

	if err := compareHash([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}
