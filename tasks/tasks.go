package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"outfitapi/models"
	"outfitapi/outfit"
	"outfitapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type OutfitGenerationPayload struct {
	GenerationID uint `json:"generation_id"`
}

type DailySuggestionPayload struct{}

// NewOutfitGenerationTask enqueues one pending OutfitGeneration row for the
// worker to run through the engine.
func NewOutfitGenerationTask(generationID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(OutfitGenerationPayload{GenerationID: generationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask("generate:outfit", payload), nil
}

func NewDailySuggestionTask() *asynq.Task {
	return asynq.NewTask("generate:daily_suggestion", []byte{})
}

// HandleOutfitGenerationTask loads the stored request, rebuilds the
// generation context from the user's closet and runs the engine. All I/O
// happens here, outside the healing loop.
func HandleOutfitGenerationTask(ctx context.Context, t *asynq.Task, db *gorm.DB, favorites services.FavoritesProvider, fbApp *firebase.App) error {
	var payload OutfitGenerationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Generation %v] Processing\n", payload.GenerationID)

	var generation models.OutfitGeneration
	res := db.First(&generation, payload.GenerationID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Queue] Error retrieving generation %v: %v", payload.GenerationID, res.Error))
		return res.Error
	}

	var clothes []models.Clothing
	if err := db.Where("owner_id = ? AND status = ?", generation.UserAccountID, "in_closet").Find(&clothes).Error; err != nil {
		sentry.CaptureException(fmt.Errorf("[Generation %v] Error fetching wardrobe: %v", generation.ID, err))
		return err
	}

	started := time.Now()
	result, err := RunGeneration(ctx, db, favorites, &generation, clothes)
	if err != nil {
		saveGenerationFail(db, generation, err.Error(), false)
		return nil
	}

	if err := SaveGenerationResult(db, &generation, result, time.Since(started)); err != nil {
		sentry.CaptureException(fmt.Errorf("[Generation %v] Error saving result: %v", generation.ID, err))
		return err
	}

	title := "Your outfit is ready"
	body := fmt.Sprintf("We picked %d pieces for your %s look", len(result.Items), generation.Occasion)
	if result.GenerationStrategy == outfit.StrategyEmergencyDefault {
		body = "We put together a basic outfit — add more pieces to your closet for better matches"
	}
	services.SendNotification(fbApp, db, generation.UserAccountID, title, body,
		map[string]string{"generation_id": fmt.Sprintf("%d", generation.ID), "type": "outfit_ready"})

	fmt.Printf("[Generation %v] Done, strategy=%s items=%d\n", generation.ID, result.GenerationStrategy, len(result.Items))
	return nil
}

// RunGeneration builds the engine context from a stored request and runs it.
// Shared by the sync endpoint and the async worker.
func RunGeneration(ctx context.Context, db *gorm.DB, favorites services.FavoritesProvider, generation *models.OutfitGeneration, clothes []models.Clothing) (outfit.Result, error) {
	view, err := services.BuildCatalogView(ctx, clothes, favorites, generation.UserAccountID)
	if err != nil {
		return outfit.Result{}, err
	}

	genCtx := &outfit.GenerationContext{
		UserID:       generation.UserAccountID,
		Occasion:     generation.Occasion,
		Style:        generation.Style,
		Mood:         generation.Mood,
		BaseItemID:   generation.BaseClothingID,
		Catalog:      view,
		TargetCounts: outfit.DefaultTargetCounts(),
	}
	if generation.Temperature != nil {
		condition := ""
		if generation.WeatherCondition != nil {
			condition = *generation.WeatherCondition
		}
		genCtx.Weather = &outfit.WeatherSnapshot{Temperature: *generation.Temperature, Condition: condition}
	}

	var profile models.StyleProfile
	if err := db.Where("user_account_id = ?", generation.UserAccountID).First(&profile).Error; err == nil {
		genCtx.Profile = &outfit.UserProfile{
			BodyType:         profile.BodyType,
			Gender:           profile.Gender,
			SkinTone:         profile.SkinTone,
			StylePreferences: profile.StylePreferences,
		}
	}

	return outfit.Generate(genCtx)
}

// SaveGenerationResult marks the row completed and snapshots the engine
// output, healing summary included, as JSON.
func SaveGenerationResult(db *gorm.DB, generation *models.OutfitGeneration, result outfit.Result, took time.Duration) error {
	generation.Status = "completed"
	generation.GenerationStrategy = &result.GenerationStrategy
	confidence := result.ConfidenceScore
	generation.ConfidenceScore = &confidence
	generation.WardrobeSize = result.WardrobeSize
	generation.ItemsSelected = result.ItemsSelected
	seconds := took.Seconds()
	generation.Duration = &seconds

	ids := make(pq.Int64Array, 0, len(result.Items))
	for _, item := range result.Items {
		ids = append(ids, int64(item.ID))
	}
	generation.ItemIDs = ids

	if result.Healing != nil {
		if blob, err := json.Marshal(result.Healing); err == nil {
			generation.HealingSummary = services.StrPointer(string(blob))
		}
	}
	if len(result.RemainingErrors) > 0 {
		if blob, err := json.Marshal(result.RemainingErrors); err == nil {
			generation.RemainingErrors = services.StrPointer(string(blob))
		}
	}

	return db.Save(generation).Error
}

func saveGenerationFail(db *gorm.DB, generation models.OutfitGeneration, msg string, shouldRetry bool) error {
	generation.GenerationRetryTimes = generation.GenerationRetryTimes + 1
	generation.GenerationErrorMessage = &msg
	if !shouldRetry || generation.GenerationRetryTimes >= 3 {
		generation.Status = "failed"
	}
	tx := db.Save(&generation)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Fail Generation %v] Error saving failed status", generation.ID))
		return tx.Error
	}
	return nil
}

// ScheduledDailySuggestionTask pushes one fresh casual outfit per user every
// morning, for users who opted into notifications.
func ScheduledDailySuggestionTask(ctx context.Context, t *asynq.Task, db *gorm.DB, favorites services.FavoritesProvider, fbApp *firebase.App) error {
	fmt.Printf("[Daily Suggestion] Processing for all users\n")

	var users []models.UserAccount
	result := db.Where("banned = ? AND receive_notifications = ?", false, true).Find(&users)
	if result.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Daily Suggestion] Error fetching users: %v", result.Error))
		return result.Error
	}

	fmt.Printf("[Daily Suggestion] Found %d users\n", len(users))

	for _, user := range users {
		if err := sendDailySuggestion(ctx, db, favorites, fbApp, user.ID); err != nil {
			fmt.Printf("[Daily Suggestion] Failed for user %d: %v\n", user.ID, err)
			sentry.CaptureException(fmt.Errorf("[Daily Suggestion] Failed for user %d: %v", user.ID, err))
			continue
		}
		time.Sleep(1 * time.Second) // To avoid hitting push rate limits
	}

	return nil
}

func sendDailySuggestion(ctx context.Context, db *gorm.DB, favorites services.FavoritesProvider, fbApp *firebase.App, userID uint) error {
	var clothes []models.Clothing
	if err := db.Where("owner_id = ? AND status = ?", userID, "in_closet").Find(&clothes).Error; err != nil {
		return fmt.Errorf("error fetching wardrobe: %v", err)
	}
	if len(clothes) == 0 {
		fmt.Printf("[Daily Suggestion] User %d has an empty closet, skipping\n", userID)
		return nil
	}

	generation := models.OutfitGeneration{
		UserAccountID: userID,
		Occasion:      "casual",
		Status:        "pending",
	}
	if err := db.Create(&generation).Error; err != nil {
		return fmt.Errorf("error creating suggestion row: %v", err)
	}

	started := time.Now()
	result, err := RunGeneration(ctx, db, favorites, &generation, clothes)
	if err != nil {
		saveGenerationFail(db, generation, err.Error(), false)
		return err
	}
	if err := SaveGenerationResult(db, &generation, result, time.Since(started)); err != nil {
		return err
	}

	message := fmt.Sprintf("Today's look: %d pieces picked from your closet", len(result.Items))
	services.SendNotification(fbApp, db, userID, "Outfit of the day", message,
		map[string]string{"generation_id": fmt.Sprintf("%d", generation.ID), "type": "daily_suggestion"})
	return nil
}
