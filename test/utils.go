package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"outfitapi/models"
	"outfitapi/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequestRaw(method string, target string, userPk string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func Int64Pointer(i int64) *int64 {
	return &i
}

func StrPointer(s string) *string {
	return &s
}

func BoolPointer(b bool) *bool {
	return &b
}

func Float64Pointer(f float64) *float64 {
	return &f
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:     "OurName",
		Email:    "email@example.com",
		GoogleID: "12232",
		Platform: models.PlatformIOS,
		LastIp:   "123.122.122.122",
		Status:   "FINISHED_AUTH",
	}
	db.Create(&user)

	tokenDb := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      "android",
		Token:         "cX-UZ3zwQEiPt-2GJkG2gA:APA91bGqRflaGrJrnynhRwZ442HdgUjVcO7mWMFnx6IwAdJ9RRKopvSP4QU7hbvTmk1XAp8XGvtHZLvo5JmOPTVKBbGqqvhfbZWKlXA9csEjx1hgpNvrWepU",
		Active:        true,
	}
	db.Save(&tokenDb)
	db.Preload("Profile").First(&user, user.ID)

	return user
}

func FakeUserV2(db *gorm.DB, userName string, email string) *models.UserAccount {
	if email == "" {
		email = "email@example.com"
	}
	user := &models.UserAccount{
		Name:     userName,
		Email:    email,
		GoogleID: "12232",
		Platform: models.PlatformIOS,
		LastIp:   "123.122.122.122",
		Status:   "FINISHED_AUTH",
	}
	db.Create(&user)
	return user
}

// FakeClothing inserts one in-closet item with engine-ready attributes.
func FakeClothing(db *gorm.DB, ownerID uint, name string, clothingType string, opts ...func(*models.Clothing)) *models.Clothing {
	clothing := &models.Clothing{
		Name:         name,
		ClothingType: clothingType,
		OwnerID:      ownerID,
		Color:        "black",
		Material:     "cotton",
		WearLayer:    defaultLayer(clothingType),
		TempMin:      -40,
		TempMax:      140,
		OccasionTags: pq.StringArray{"casual"},
		Status:       "in_closet",
		ImageStatus:  "uploaded",
	}
	for _, opt := range opts {
		opt(clothing)
	}
	db.Create(clothing)
	return clothing
}

func defaultLayer(clothingType string) string {
	if clothingType == "outerwear" {
		return "outer"
	}
	return "base"
}

func WithTempRange(min, max float64) func(*models.Clothing) {
	return func(c *models.Clothing) {
		c.TempMin = min
		c.TempMax = max
	}
}

func WithOccasionTags(tags ...string) func(*models.Clothing) {
	return func(c *models.Clothing) {
		c.OccasionTags = pq.StringArray(tags)
	}
}

func WithStyleTags(tags ...string) func(*models.Clothing) {
	return func(c *models.Clothing) {
		c.StyleTags = pq.StringArray(tags)
	}
}

func WithLayer(layer string) func(*models.Clothing) {
	return func(c *models.Clothing) {
		c.WearLayer = layer
	}
}

func Contains(items []string, lookFor string) bool {
	for i := 0; i < len(items); i++ {
		if items[i] == lookFor {
			return true
		}
	}
	return false
}

type GoogleServiceMock struct{}

func (gsm GoogleServiceMock) ValidateIdToken(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error) {

	return &idtoken.Payload{Issuer: "Issue", Audience: "AAA", Expires: 119919191919, IssuedAt: 12312321321, Subject: "fake@example.com", Claims: map[string]interface{}{
		"email":   "fake@example.com",
		"picture": "pictureurl",
		"sub":     "123googleid",
	}}, nil

}

type AWSProviderMock struct {
	MockUrl string
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {

	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return awsService.MockUrl, nil
}

func (awsService AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	return url, 204, nil
}

type URLCacheMock struct {
	MockUrl string
	Err     error
}

func (m URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("%s/%s", m.MockUrl, objectKey), nil
}

type FavoritesMock struct {
	Stats map[uint]services.FavoriteStat
	Err   error
}

func (m FavoritesMock) GetUserStats(ctx context.Context, userID uint) (map[uint]services.FavoriteStat, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Stats == nil {
		return map[uint]services.FavoriteStat{}, nil
	}
	return m.Stats, nil
}
