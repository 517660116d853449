package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"outfitapi/dbhelper"
	"outfitapi/models"
	"outfitapi/outfit"
	"outfitapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutfitSyncOk(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	test.FakeClothing(db, user.ID, "White Tee", "top")
	test.FakeClothing(db, user.ID, "Blue Jeans", "bottom")
	test.FakeClothing(db, user.ID, "Sneakers", "shoes")

	reqBody := GenerateOutfitIn{Occasion: "casual"}
	req := test.NewJSONAuthRequest("POST", "/user/outfits/generate", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "Expected 200 OK, got %d: %s", rec.Code, rec.Body.String())

	var response GenerationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "completed", response.Status)
	require.NotNil(t, response.GenerationStrategy)
	assert.Equal(t, outfit.StrategyPrimary, *response.GenerationStrategy)
	assert.Len(t, response.Items, 3)
	require.NotNil(t, response.ConfidenceScore)
	assert.Greater(t, *response.ConfidenceScore, 0.0)
	assert.Equal(t, 3, response.WardrobeSize)
}

func TestGenerateOutfitHealsWeatherMismatch(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	sweater := test.FakeClothing(db, user.ID, "Wool Sweater", "top",
		test.WithTempRange(30, 60), test.WithStyleTags("cozy"))
	sweater.Favorite = true
	sweater.WearCount = 20
	require.NoError(t, db.Save(sweater).Error)
	tshirt := test.FakeClothing(db, user.ID, "T-Shirt", "top", test.WithTempRange(60, 100))
	test.FakeClothing(db, user.ID, "Jeans", "bottom")
	test.FakeClothing(db, user.ID, "Sneakers", "shoes")

	reqBody := GenerateOutfitIn{
		Occasion:    "casual",
		Style:       "cozy",
		Temperature: Float64Pointer(85),
	}
	req := test.NewJSONAuthRequest("POST", "/user/outfits/generate", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response GenerationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	itemIDs := make([]uint, 0, len(response.Items))
	for _, item := range response.Items {
		itemIDs = append(itemIDs, item.ID)
	}
	assert.NotContains(t, itemIDs, sweater.ID)
	assert.Contains(t, itemIDs, tshirt.ID)
}

func TestGenerateOutfitEmptyCloset(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	reqBody := GenerateOutfitIn{Occasion: "casual"}
	req := test.NewJSONAuthRequest("POST", "/user/outfits/generate", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateOutfitRequiresOccasion(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/user/outfits/generate", strconv.FormatUint(uint64(user.ID), 10), GenerateOutfitIn{})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateOutfitRejectsForeignBaseItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@example.com")

	foreign := test.FakeClothing(db, other.ID, "Not Yours", "top")
	test.FakeClothing(db, user.ID, "Tee", "top")

	reqBody := GenerateOutfitIn{Occasion: "casual", BaseClothingID: &foreign.ID}
	req := test.NewJSONAuthRequest("POST", "/user/outfits/generate", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateOutfitFreeDailyLimit(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	test.FakeClothing(db, user.ID, "Tee", "top")
	test.FakeClothing(db, user.ID, "Jeans", "bottom")
	test.FakeClothing(db, user.ID, "Sneakers", "shoes")

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.OutfitGeneration{
			UserAccountID: user.ID,
			Occasion:      "casual",
			Status:        "completed",
		}).Error)
	}

	reqBody := GenerateOutfitIn{Occasion: "casual"}
	req := test.NewJSONAuthRequest("POST", "/user/outfits/generate", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGenerateOutfitEnforcedLimitOverride(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	limit := int32(1)
	user.EnforcedDailyGenerateLimit = &limit
	require.NoError(t, db.Save(user).Error)

	test.FakeClothing(db, user.ID, "Tee", "top")
	test.FakeClothing(db, user.ID, "Jeans", "bottom")
	test.FakeClothing(db, user.ID, "Sneakers", "shoes")

	require.NoError(t, db.Create(&models.OutfitGeneration{
		UserAccountID: user.ID,
		Occasion:      "casual",
		Status:        "completed",
	}).Error)

	reqBody := GenerateOutfitIn{Occasion: "casual"}
	req := test.NewJSONAuthRequest("POST", "/user/outfits/generate", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListGenerationsOk(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	strategy := outfit.StrategyPrimary
	require.NoError(t, db.Create(&models.OutfitGeneration{
		UserAccountID:      user.ID,
		Occasion:           "casual",
		Status:             "completed",
		GenerationStrategy: &strategy,
	}).Error)

	req := test.NewJSONAuthRequest("GET", "/user/outfits/list", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response []GenerationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "casual", response[0].Occasion)
}

func TestGetGenerationParsesHealingSummary(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)

	summary := outfit.HealingSummary{
		Passes:       2,
		ItemsRemoved: []uint{7},
		Resolved:     true,
	}
	blob, err := json.Marshal(summary)
	require.NoError(t, err)
	summaryText := string(blob)
	strategy := outfit.StrategyHealed

	generation := models.OutfitGeneration{
		UserAccountID:      user.ID,
		Occasion:           "business",
		Status:             "completed",
		GenerationStrategy: &strategy,
		HealingSummary:     &summaryText,
	}
	require.NoError(t, db.Create(&generation).Error)

	req := test.NewJSONAuthRequest("GET", fmt.Sprintf("/user/outfits/%v", generation.ID), strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response GenerationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.HealingSummary)
	assert.Equal(t, 2, response.HealingSummary.Passes)
	assert.Equal(t, []uint{7}, response.HealingSummary.ItemsRemoved)
	assert.True(t, response.HealingSummary.Resolved)
}

func TestGetGenerationOfAnotherUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, &test.URLCacheMock{}, test.FavoritesMock{})
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@example.com")

	generation := models.OutfitGeneration{
		UserAccountID: other.ID,
		Occasion:      "casual",
		Status:        "completed",
	}
	require.NoError(t, db.Create(&generation).Error)

	req := test.NewJSONAuthRequest("GET", fmt.Sprintf("/user/outfits/%v", generation.ID), strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
