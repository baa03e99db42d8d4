package v1_test

import (
	"net/http"

	v1 "github.com/homebudget/backend/internal/controllers/v1"
	"github.com/homebudget/backend/internal/models"
	"github.com/homebudget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetProfile() {
	alice := suite.createTestUser("alice")

	r := suite.request(alice, http.MethodGet, test.BaseURL+"/v1/users/profile", nil)
	suite.assertHTTPStatus(&r, http.StatusOK)

	var profile v1.ProfileResponse
	test.DecodeResponse(suite.T(), &r, &profile)

	assert.Equal(suite.T(), alice.ID, profile.Data.ID)
	assert.Equal(suite.T(), "alice@example.com", profile.Data.Email)
	assert.Equal(suite.T(), "alice", profile.Data.Username)
	assert.Equal(suite.T(), defaultAvatar, profile.Data.Avatar)
	assert.False(suite.T(), profile.Data.RegisteredAt.IsZero())
}

func (suite *TestSuiteStandard) TestSearchUsers() {
	alice := suite.createTestUser("alice")
	_ = suite.createTestUser("Malik")
	_ = suite.createTestUser("bob")

	tests := []struct {
		search    string
		usernames []string
	}{
		{"LI", []string{"Malik", "alice"}},
		{"bob@example.com", []string{"bob"}},
		{"BOB@example.com", []string{"bob"}},
		{"nobody", []string{}},
	}

	for _, tt := range tests {
		r := suite.request(alice, http.MethodGet, test.BaseURL+"/v1/users?search="+tt.search, nil)
		suite.assertHTTPStatus(&r, http.StatusOK)

		var list v1.UserListResponse
		test.DecodeResponse(suite.T(), &r, &list)

		usernames := make([]string, 0, len(list.Data))
		for _, u := range list.Data {
			usernames = append(usernames, u.Username)
		}
		assert.Equal(suite.T(), tt.usernames, usernames, tt.search)
	}

	r := suite.request(alice, http.MethodGet, test.BaseURL+"/v1/users", nil)
	e := suite.assertError(&r, http.StatusBadRequest, models.CodeRequired)
	assert.Equal(suite.T(), "search", e.Field)
}
