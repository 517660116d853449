package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"outfitapi/models"
	"outfitapi/outfit"
	"outfitapi/services"
	"outfitapi/tasks"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type GenerateOutfitIn struct {
	Occasion         string   `json:"occasion" validate:"required,max=50"`
	Style            string   `json:"style" validate:"omitempty,max=50"`
	Mood             string   `json:"mood" validate:"omitempty,max=50"`
	Temperature      *float64 `json:"temperature"`
	WeatherCondition *string  `json:"weather_condition" validate:"omitempty,max=50"`
	BaseClothingID   *uint    `json:"base_clothing_id"`
	Async            bool     `json:"async"`
}

type GenerationResponse struct {
	ID                 uint                     `json:"id"`
	Status             string                   `json:"status"`
	Occasion           string                   `json:"occasion"`
	Style              string                   `json:"style"`
	Mood               string                   `json:"mood"`
	GenerationStrategy *string                  `json:"generation_strategy"`
	ConfidenceScore    *float64                 `json:"confidence_score"`
	Items              []ClothingResponse       `json:"items"`
	HealingSummary     *outfit.HealingSummary   `json:"healing_summary,omitempty"`
	RemainingErrors    []outfit.ValidationError `json:"remaining_errors,omitempty"`
	WardrobeSize       int                      `json:"wardrobe_size"`
	ItemsSelected      int                      `json:"items_selected"`
	Duration           *float64                 `json:"duration"`
	CreatedAt          string                   `json:"created_at"`
}

type OutfitsController struct {
	Favorites   services.FavoritesProvider
	FirebaseApp *firebase.App
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.POST("/generate", controller.GenerateOutfit)
	g.GET("/list", controller.ListGenerations)
	g.GET("/:generationId", controller.GetGeneration)
}

// GenerateOutfit creates a generation row and either runs the engine inline
// or enqueues it for the worker when async is requested.
func (controller *OutfitsController) GenerateOutfit(c echo.Context) error {
	var req GenerateOutfitIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	if user.Subscription == nil || *user.Subscription == string(models.Free) {
		dailyLimit := int64(3)
		if user.EnforcedDailyGenerateLimit != nil {
			dailyLimit = int64(*user.EnforcedDailyGenerateLimit)
		}
		var todayCount int64
		startOfDay := time.Now().Truncate(24 * time.Hour)
		if err := db.Model(&models.OutfitGeneration{}).
			Where("user_account_id = ? AND created_at >= ?", user.ID, startOfDay).
			Count(&todayCount).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get generation data"})
		}
		fmt.Printf("[User %v] Free plan, generations today: %v\n", user.ID, todayCount)
		if todayCount >= dailyLimit {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "You have reached your daily generation limit, please subscribe"})
		}
	}

	if req.BaseClothingID != nil {
		var base models.Clothing
		if err := db.Where("id = ? AND owner_id = ? AND status = ?", *req.BaseClothingID, user.ID, "in_closet").
			Take(&base).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Base clothing item is not in your closet"})
		}
	}

	generation := models.OutfitGeneration{
		UserAccountID:    user.ID,
		Occasion:         req.Occasion,
		Style:            req.Style,
		Mood:             req.Mood,
		Temperature:      req.Temperature,
		WeatherCondition: req.WeatherCondition,
		BaseClothingID:   req.BaseClothingID,
		Status:           "pending",
	}
	if err := db.Create(&generation).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create generation"})
	}

	if req.Async {
		client, ok := c.Get("__asynqclient").(*asynq.Client)
		if !ok || client == nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Queue unavailable"})
		}
		task, err := tasks.NewOutfitGenerationTask(generation.ID)
		if err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to enqueue generation"})
		}
		if _, err := client.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("generate")); err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to enqueue generation"})
		}
		fmt.Printf("[Generation %v] Enqueued for user %v\n", generation.ID, user.ID)
		return c.JSON(http.StatusAccepted, map[string]interface{}{
			"id":     generation.ID,
			"status": generation.Status,
		})
	}

	var clothes []models.Clothing
	if err := db.Where("owner_id = ? AND status = ?", user.ID, "in_closet").Find(&clothes).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}
	if len(clothes) == 0 {
		failMsg := "closet is empty"
		generation.Status = "failed"
		generation.GenerationErrorMessage = &failMsg
		db.Save(&generation)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Your closet is empty, add some clothes first"})
	}

	started := time.Now()
	result, err := tasks.RunGeneration(c.Request().Context(), db, controller.Favorites, &generation, clothes)
	if err != nil {
		msg := err.Error()
		generation.Status = "failed"
		generation.GenerationErrorMessage = &msg
		db.Save(&generation)
		sentry.CaptureException(fmt.Errorf("[Generation %v] Engine error: %v", generation.ID, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate outfit"})
	}
	if err := tasks.SaveGenerationResult(db, &generation, result, time.Since(started)); err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save generation"})
	}

	return c.JSON(http.StatusOK, controller.toGenerationResponse(db, generation))
}

func (controller *OutfitsController) ListGenerations(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var generations []models.OutfitGeneration
	if err := db.Where("user_account_id = ?", user.ID).
		Order("created_at DESC").Limit(50).Find(&generations).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch generations"})
	}

	responses := make([]GenerationResponse, 0, len(generations))
	for _, generation := range generations {
		responses = append(responses, controller.toGenerationResponse(db, generation))
	}
	return c.JSON(http.StatusOK, responses)
}

func (controller *OutfitsController) GetGeneration(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var generationId uint
	if err := echo.PathParamsBinder(c).Uint("generationId", &generationId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	var generation models.OutfitGeneration
	if err := db.Where("id = ? AND user_account_id = ?", generationId, user.ID).
		Take(&generation).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Generation not found"})
	}
	return c.JSON(http.StatusOK, controller.toGenerationResponse(db, generation))
}

func (controller *OutfitsController) toGenerationResponse(db *gorm.DB, generation models.OutfitGeneration) GenerationResponse {
	resp := GenerationResponse{
		ID:                 generation.ID,
		Status:             generation.Status,
		Occasion:           generation.Occasion,
		Style:              generation.Style,
		Mood:               generation.Mood,
		GenerationStrategy: generation.GenerationStrategy,
		ConfidenceScore:    generation.ConfidenceScore,
		Items:              []ClothingResponse{},
		WardrobeSize:       generation.WardrobeSize,
		ItemsSelected:      generation.ItemsSelected,
		Duration:           generation.Duration,
		CreatedAt:          generation.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if len(generation.ItemIDs) > 0 {
		ids := make([]int64, len(generation.ItemIDs))
		copy(ids, generation.ItemIDs)
		var clothes []models.Clothing
		if err := db.Where("id IN ?", ids).Find(&clothes).Error; err == nil {
			for _, item := range clothes {
				resp.Items = append(resp.Items, toClothingResponse(item, nil))
			}
		}
	}

	if generation.HealingSummary != nil {
		var summary outfit.HealingSummary
		if err := json.Unmarshal([]byte(*generation.HealingSummary), &summary); err == nil {
			resp.HealingSummary = &summary
		}
	}
	if generation.RemainingErrors != nil {
		var remaining []outfit.ValidationError
		if err := json.Unmarshal([]byte(*generation.RemainingErrors), &remaining); err == nil {
			resp.RemainingErrors = remaining
		}
	}
	return resp
}
