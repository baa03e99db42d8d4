package models

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Friends is the friends list of a user. Every user has at most one,
// it is created the first time it is needed.
type Friends struct {
	DefaultModel
	UserID uuid.UUID `gorm:"uniqueIndex"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`
}

// FriendsListEntry is a user on a friends list.
type FriendsListEntry struct {
	FriendsID uuid.UUID `gorm:"primaryKey"`
	Friends   Friends   `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID `gorm:"primaryKey;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
}

// FriendsOf returns the friends list of the user, creating it if it does not exist yet.
func FriendsOf(db *gorm.DB, userID uuid.UUID) (Friends, error) {
	var lists []Friends
	err := db.Where("user_id = ?", userID).Limit(1).Find(&lists).Error
	if err != nil {
		return Friends{}, err
	}

	if len(lists) == 1 {
		return lists[0], nil
	}

	friends := Friends{UserID: userID}
	err = db.Omit(clause.Associations).Create(&friends).Error
	return friends, err
}

// Users returns the users on the list ordered by username.
func (f Friends) Users(db *gorm.DB) ([]User, error) {
	users := make([]User, 0)
	err := db.
		Joins("JOIN friends_list_entries ON friends_list_entries.user_id = users.id").
		Where("friends_list_entries.friends_id = ?", f.ID).
		Order("users.username ASC").
		Find(&users).
		Error

	return users, err
}

// Add puts users on the list. Unknown users are rejected, users that are
// on the list already are left untouched.
func (f Friends) Add(db *gorm.DB, userIDs []uuid.UUID) error {
	ids := unique(userIDs)
	if len(ids) == 0 {
		return nil
	}

	existing, err := ExistingUserIDs(db, ids)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !slices.Contains(existing, id) {
			return validationError("friendsList", CodeDoesNotExist, "invalid pk \"%s\" - object does not exist", id)
		}
	}

	rows := make([]FriendsListEntry, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, FriendsListEntry{FriendsID: f.ID, UserID: id})
	}

	return db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// Remove takes users off the list. Users that are not on the list are ignored.
func (f Friends) Remove(db *gorm.DB, userIDs []uuid.UUID) error {
	ids := unique(userIDs)
	if len(ids) == 0 {
		return nil
	}

	return db.Where("friends_id = ? AND user_id IN ?", f.ID, ids).Delete(&FriendsListEntry{}).Error
}
