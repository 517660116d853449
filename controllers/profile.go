package controllers

import (
	"errors"
	"net/http"

	"outfitapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProfileController struct {
}

func (controller *ProfileController) ProfileRoutes(g *echo.Group) {
	g.GET("", controller.GetProfile)
	g.PUT("", controller.UpdateProfile)
	g.POST("/push-token", controller.RegisterPushToken)
	g.PUT("/settings", controller.UpdateSettings)
}

func (controller *ProfileController) GetProfile(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var profile models.StyleProfile
	result := db.Where("user_account_id = ?", user.ID).Take(&profile)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, models.StyleProfile{UserAccountID: user.ID})
	}
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile upserts the style profile the scorer biases toward.
func (controller *ProfileController) UpdateProfile(c echo.Context) error {
	var req models.StyleProfileIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var profile models.StyleProfile
	result := db.Where("user_account_id = ?", user.ID).Take(&profile)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		profile = models.StyleProfile{UserAccountID: user.ID}
	} else if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch profile"})
	}

	profile.BodyType = req.BodyType
	profile.Gender = req.Gender
	profile.SkinTone = req.SkinTone
	profile.StylePreferences = pq.StringArray(req.StylePreferences)
	if err := db.Save(&profile).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

func (controller *ProfileController) RegisterPushToken(c echo.Context) error {
	var req models.UserPushIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	token := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      models.ScanPlatform(req.Platform),
		Token:         req.Token,
		Active:        true,
	}
	if err := db.Create(&token).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register token"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Token registered"})
}

func (controller *ProfileController) UpdateSettings(c echo.Context) error {
	var req models.UserSettingsIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	user.ReceiveNotifications = req.ReceiveNotifications
	if err := db.Save(&user).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save settings"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Settings updated"})
}
