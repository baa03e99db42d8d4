package models_test

import (
	"github.com/google/uuid"
	"github.com/homebudget/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestFriendsOfCreatesOnce() {
	alice := suite.createTestUser("alice")

	first, err := models.FriendsOf(suite.db, alice.ID)
	suite.Require().Nil(err)

	second, err := models.FriendsOf(suite.db, alice.ID)
	suite.Require().Nil(err)

	assert.Equal(suite.T(), first.ID, second.ID)
}

func (suite *TestSuiteStandard) TestFriendsAddRemove() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	carol := suite.createTestUser("carol")

	friends, err := models.FriendsOf(suite.db, alice.ID)
	suite.Require().Nil(err)

	suite.Require().Nil(friends.Add(suite.db, []uuid.UUID{carol.ID, bob.ID}))
	suite.Require().Nil(friends.Add(suite.db, []uuid.UUID{bob.ID}))

	users, err := friends.Users(suite.db)
	suite.Require().Nil(err)
	suite.Require().Len(users, 2)
	assert.Equal(suite.T(), "bob", users[0].Username)
	assert.Equal(suite.T(), "carol", users[1].Username)

	suite.Require().Nil(friends.Remove(suite.db, []uuid.UUID{bob.ID, alice.ID}))

	users, err = friends.Users(suite.db)
	suite.Require().Nil(err)
	suite.Require().Len(users, 1)
	assert.Equal(suite.T(), carol.ID, users[0].ID)
}

func (suite *TestSuiteStandard) TestFriendsAddUnknownUser() {
	alice := suite.createTestUser("alice")

	friends, err := models.FriendsOf(suite.db, alice.ID)
	suite.Require().Nil(err)

	err = friends.Add(suite.db, []uuid.UUID{uuid.New()})
	var verr models.ValidationError
	if assert.ErrorAs(suite.T(), err, &verr) {
		assert.Equal(suite.T(), models.CodeDoesNotExist, verr.Code)
		assert.Equal(suite.T(), "friendsList", verr.Field)
	}
}

func (suite *TestSuiteStandard) TestFriendsRemovedWithUser() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	friends, err := models.FriendsOf(suite.db, alice.ID)
	suite.Require().Nil(err)
	suite.Require().Nil(friends.Add(suite.db, []uuid.UUID{bob.ID}))

	suite.Require().Nil(suite.db.Delete(&bob).Error)

	users, err := friends.Users(suite.db)
	suite.Require().Nil(err)
	assert.Empty(suite.T(), users)
}
