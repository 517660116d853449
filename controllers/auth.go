package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"outfitapi/models"
	"outfitapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type AuthController struct {
	Google services.GoogleServiceProvider
}

func (controller *AuthController) AuthRoutes(g *echo.Group) {
	g.POST("/google/signin", controller.GoogleSignIn)
	g.POST("/google/signup", controller.GoogleSignUp)
	g.GET("/me", controller.Me, jwtForGroup(), UserMiddleware)
}

// GoogleSignIn exchanges a verified Google ID token for our own JWT. A
// first-time email gets New=true and no token — the client follows up with
// the signup call carrying profile fields.
func (controller *AuthController) GoogleSignIn(c echo.Context) error {
	var req models.GoogleAuthSignIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	payload, err := controller.Google.ValidateIdToken(c.Request().Context(), req.IdToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		fmt.Println("Invalid google id token", err)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Google token"})
	}
	email, _ := payload.Claims["email"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Google token carries no email"})
	}

	var user models.UserAccount
	result := db.Where("email = ?", email).Take(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, models.GoogleSignInOut{
			Email:  email,
			Avatar: picture,
			New:    true,
		})
	}
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to sign in"})
	}

	user.LastIp = c.RealIP()
	db.Save(&user)

	return c.JSON(http.StatusOK, models.GoogleSignInOut{
		Email:       user.Email,
		Id:          UIntToStr(user.ID),
		Avatar:      user.AvatarURL,
		AccessToken: GenerateUserToken(UIntToStr(user.ID), c, 72),
	})
}

func (controller *AuthController) GoogleSignUp(c echo.Context) error {
	var req models.SignUpIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	payload, err := controller.Google.ValidateIdToken(c.Request().Context(), req.IdToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		fmt.Println("Invalid google id token", err)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Google token"})
	}
	email, _ := payload.Claims["email"].(string)
	picture, _ := payload.Claims["picture"].(string)
	googleID, _ := payload.Claims["sub"].(string)

	var existing models.UserAccount
	if err := db.Where("email = ?", email).Take(&existing).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Account already exists, please sign in"})
	}

	user := models.UserAccount{
		Name:      req.Name,
		Email:     email,
		GoogleID:  googleID,
		UTMSource: req.UTMSource,
		Platform:  models.ScanPlatform(req.Platform),
		LastIp:    c.RealIP(),
		Status:    "FINISHED_AUTH",
		AvatarURL: picture,
	}
	if err := db.Create(&user).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create account"})
	}

	return c.JSON(http.StatusCreated, models.GoogleSignInOut{
		Email:       user.Email,
		Id:          UIntToStr(user.ID),
		Avatar:      user.AvatarURL,
		AccessToken: GenerateUserToken(UIntToStr(user.ID), c, 72),
	})
}

func (controller *AuthController) Me(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, models.UserMeInfoOut{
		Id:                   UIntToStr(user.ID),
		Name:                 user.Name,
		Email:                user.Email,
		AvatarURL:            user.AvatarURL,
		Subscription:         user.Subscription,
		ReceiveNotifications: user.ReceiveNotifications,
		Profile:              user.Profile,
	})
}
