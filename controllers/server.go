package controllers

import (
	"context"
	"log"
	"net/http"
	"os"

	"outfitapi/models"
	"outfitapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/go-playground/validator"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	googleService services.GoogleServiceProvider,
	awsService services.AWSServiceProvider,
	firebaseApp *firebase.App,
	asynqClient *asynq.Client,
	urlCache services.URLCacheServiceProvider,
	favorites services.FavoritesProvider,
) *echo.Echo {

	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize AWS provider: S3")
	}

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("platform", models.ValidatePlatform)
	e.Validator = &CustomValidator{validator: v}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__asynqclient", asynqClient)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	authGroup := e.Group("auth")
	authController := AuthController{Google: googleService}
	authController.AuthRoutes(authGroup)

	userGroup := e.Group("user", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), UserMiddleware)

	profileController := ProfileController{}
	profileController.ProfileRoutes(userGroup.Group("/profile"))

	clothesController := ClothesController{AWSService: awsService, URLCache: urlCache}
	clothesController.ClothingRoutes(userGroup.Group("/clothes"))

	outfitsController := OutfitsController{Favorites: favorites, FirebaseApp: firebaseApp}
	outfitsController.OutfitRoutes(userGroup.Group("/outfits"))

	return e
}
