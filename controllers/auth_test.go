package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"outfitapi/dbhelper"
	"outfitapi/models"
	"outfitapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleSignInNewUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})

	reqBody := models.GoogleAuthSignIn{IdToken: "sometoken", Platform: "ios"}
	req := test.NewJSONRequest("POST", "/auth/google/signin", reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response models.GoogleSignInOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.New)
	assert.Equal(t, "fake@example.com", response.Email)
	assert.Empty(t, response.AccessToken)
}

func TestGoogleSignInExistingUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})

	user := test.FakeUserV2(db, "Existing", "fake@example.com")

	reqBody := models.GoogleAuthSignIn{IdToken: "sometoken", Platform: "ios"}
	req := test.NewJSONRequest("POST", "/auth/google/signin", reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response models.GoogleSignInOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.New)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), response.Id)
	assert.NotEmpty(t, response.AccessToken)
}

func TestGoogleSignUpCreatesAccount(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})

	reqBody := models.SignUpIn{
		ProfileIn: models.ProfileIn{Name: "New User"},
		IdToken:   "sometoken",
		Platform:  "ios",
	}
	req := test.NewJSONRequest("POST", "/auth/google/signup", reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved models.UserAccount
	require.NoError(t, db.Where("email = ?", "fake@example.com").Take(&saved).Error)
	assert.Equal(t, "New User", saved.Name)
	assert.Equal(t, "FINISHED_AUTH", saved.Status)
	assert.Equal(t, "123googleid", saved.GoogleID)
}

func TestGoogleSignUpConflict(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})

	test.FakeUserV2(db, "Existing", "fake@example.com")

	reqBody := models.SignUpIn{
		ProfileIn: models.ProfileIn{Name: "Dup"},
		IdToken:   "sometoken",
		Platform:  "ios",
	}
	req := test.NewJSONRequest("POST", "/auth/google/signup", reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMeReturnsProfile(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/auth/me", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response models.UserMeInfoOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, user.Email, response.Email)
	assert.Equal(t, user.Name, response.Name)
}

func TestMeUnauthorized(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})

	req := test.NewJSONRequest("GET", "/auth/me", "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
