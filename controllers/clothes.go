package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"outfitapi/models"
	"outfitapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CreateClothingIn struct {
	Name         string   `json:"name" validate:"omitempty,max=100"`
	FileName     *string  `json:"file_name" validate:"required,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
	ClothingType string   `json:"clothing_type" validate:"required,oneof=top bottom shoes outerwear accessory"`
	Color        string   `json:"color" validate:"omitempty,max=50"`
	Material     string   `json:"material" validate:"omitempty,max=50"`
	Pattern      string   `json:"pattern" validate:"omitempty,max=50"`
	Formality    int      `json:"formality" validate:"omitempty,min=0,max=4"`
	WearLayer    string   `json:"wear_layer" validate:"omitempty,oneof=base mid outer"`
	Neckline     string   `json:"neckline" validate:"omitempty,max=30"`
	SleeveLength string   `json:"sleeve_length" validate:"omitempty,max=30"`
	TempMin      *float64 `json:"temp_min"`
	TempMax      *float64 `json:"temp_max"`
	OccasionTags []string `json:"occasion_tags" validate:"omitempty,max=20,dive,max=50"`
	StyleTags    []string `json:"style_tags" validate:"omitempty,max=20,dive,max=50"`
	AddToCloset  *bool    `json:"add_to_closet" validate:"required"`
}

type UpdateClothingIn struct {
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
	Favorite     *bool    `json:"favorite"`
	WornToday    *bool    `json:"worn_today"`
	OccasionTags []string `json:"occasion_tags" validate:"omitempty,max=20,dive,max=50"`
	StyleTags    []string `json:"style_tags" validate:"omitempty,max=20,dive,max=50"`
}

type ClothingResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	ClothingType string   `json:"clothing_type"`
	Color        string   `json:"color"`
	Material     string   `json:"material"`
	WearLayer    string   `json:"wear_layer"`
	TempMin      float64  `json:"temp_min"`
	TempMax      float64  `json:"temp_max"`
	OccasionTags []string `json:"occasion_tags"`
	StyleTags    []string `json:"style_tags"`
	WearCount    int      `json:"wear_count"`
	Favorite     bool     `json:"favorite"`
	Status       string   `json:"status"`
	Uri          *string  `json:"uri,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type ClothingCreatedResponse struct {
	ClothingResponse ClothingResponse `json:"clothes"`
	FileUploadUrl    string           `json:"file_upload_url"`
}

type ClothesListResponse struct {
	Tops        []ClothingResponse `json:"tops"`
	Bottoms     []ClothingResponse `json:"bottoms"`
	Shoes       []ClothingResponse `json:"shoes"`
	Outerwear   []ClothingResponse `json:"outerwear"`
	Accessories []ClothingResponse `json:"accessories"`
}

type ClothesController struct {
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
}

func (controller *ClothesController) ClothingRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateClothing)
	g.GET("/list", controller.ListClothes)
	g.PUT("/:clothingId", controller.UpdateClothing)
	g.DELETE("/:clothingId", controller.DeleteClothing)
}

func (controller *ClothesController) CreateClothing(c echo.Context) error {
	var req CreateClothingIn
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

	if req.FileName == nil || *req.FileName == "" {
		sentry.CaptureException(fmt.Errorf("Image was not provided when creating clothing %s, user %v", req.Name, user.ID))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, it seems image was not provided, please try again"})
	}
	if req.TempMin != nil && req.TempMax != nil && *req.TempMin > *req.TempMax {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "temp_min cannot exceed temp_max"})
	}

	if user.Subscription == nil || *user.Subscription == string(models.Free) {
		var totalClothingCount int64
		if err := db.Model(&models.Clothing{}).Where("owner_id = ?", user.ID).Count(&totalClothingCount).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get clothe data"})
		}
		fmt.Printf("[User %v] Free plan, clothe count: %v", user.ID, totalClothingCount)
		if totalClothingCount >= 20 {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "You have reached the free limit of 20 clothes, please subscribe"})
		}
	}

	clothing := models.Clothing{
		Name:         req.Name,
		Description:  req.Description,
		ClothingType: req.ClothingType,
		Color:        req.Color,
		Material:     req.Material,
		Pattern:      req.Pattern,
		Formality:    req.Formality,
		WearLayer:    req.WearLayer,
		Neckline:     req.Neckline,
		SleeveLength: req.SleeveLength,
		OccasionTags: pq.StringArray(req.OccasionTags),
		StyleTags:    pq.StringArray(req.StyleTags),
		OwnerID:      user.ID,
		Status:       "temporary",
		ImageStatus:  "draft",
	}
	if req.TempMin != nil {
		clothing.TempMin = *req.TempMin
	}
	if req.TempMax != nil {
		clothing.TempMax = *req.TempMax
	}
	if req.AddToCloset != nil && *req.AddToCloset {
		clothing.Status = "in_closet"
	}

	var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
	safeFileName := fmt.Sprintf("clothes/%s", *req.FileName)
	uploadUrl, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
	clothing.ImageURL = &safeFileName
	if presignErr != nil {
		log.Printf("Unable to presign generate for %s!, %s", clothing.Name, presignErr)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Error while creating clothe with attachment",
		})
	}

	if err := db.Create(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	response := ClothingCreatedResponse{
		ClothingResponse: toClothingResponse(clothing, nil),
		FileUploadUrl:    uploadUrl,
	}
	return c.JSON(http.StatusCreated, response)
}

func (controller *ClothesController) UpdateClothing(c echo.Context) error {
	var req UpdateClothingIn
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

	var clothingId uint
	if err := echo.PathParamsBinder(c).Uint("clothingId", &clothingId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	var clothing models.Clothing
	if err := db.Where("id = ? AND owner_id = ?", clothingId, user.ID).Take(&clothing).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Clothing not found"})
	}

	if req.Name != nil {
		clothing.Name = *req.Name
	}
	if req.Description != nil {
		clothing.Description = req.Description
	}
	if req.Favorite != nil {
		clothing.Favorite = *req.Favorite
	}
	if req.WornToday != nil && *req.WornToday {
		clothing.WearCount = clothing.WearCount + 1
		now := time.Now().UnixMilli()
		clothing.LastWorn = &now
	}
	if req.OccasionTags != nil {
		clothing.OccasionTags = pq.StringArray(req.OccasionTags)
	}
	if req.StyleTags != nil {
		clothing.StyleTags = pq.StringArray(req.StyleTags)
	}

	if err := db.Save(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update clothing"})
	}
	return c.JSON(http.StatusOK, toClothingResponse(clothing, nil))
}

func (controller *ClothesController) DeleteClothing(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var clothingId uint
	if err := echo.PathParamsBinder(c).Uint("clothingId", &clothingId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	result := db.Where("id = ? AND owner_id = ?", clothingId, user.ID).Delete(&models.Clothing{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete clothing"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Clothing not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

// populatePresignedClothingImages enriches raw clothing rows with presigned
// read URLs concurrently, with a failsafe for when the cache system itself
// fails.
func (controller *ClothesController) populatePresignedClothingImages(ctx context.Context, clothes []models.Clothing) []ClothingResponse {
	if len(clothes) == 0 {
		return []ClothingResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]ClothingResponse, len(clothes))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, clothingItem := range clothes {
		wg.Add(1)
		go func(index int, item models.Clothing) {
			defer wg.Done()

			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				objectKey := *item.ImageURL

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)
				if err == nil {
					imageUrl = url
				} else {
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)
					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			processedResponses[index] = toClothingResponse(item, &imageUrl)
		}(i, clothingItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *ClothesController) ListClothes(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var clothes []models.Clothing
	if err := db.Where("owner_id = ?", user.ID).Find(&clothes).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch clothes"})
	}
	processedResponses := controller.populatePresignedClothingImages(c.Request().Context(), clothes)

	response := ClothesListResponse{
		Tops:        []ClothingResponse{},
		Bottoms:     []ClothingResponse{},
		Shoes:       []ClothingResponse{},
		Outerwear:   []ClothingResponse{},
		Accessories: []ClothingResponse{},
	}

	for _, resp := range processedResponses {
		switch resp.ClothingType {
		case "top":
			response.Tops = append(response.Tops, resp)
		case "bottom":
			response.Bottoms = append(response.Bottoms, resp)
		case "shoes":
			response.Shoes = append(response.Shoes, resp)
		case "outerwear":
			response.Outerwear = append(response.Outerwear, resp)
		case "accessory":
			response.Accessories = append(response.Accessories, resp)
		}
	}

	return c.JSON(http.StatusOK, response)
}

func toClothingResponse(item models.Clothing, uri *string) ClothingResponse {
	return ClothingResponse{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		ClothingType: item.ClothingType,
		Color:        item.Color,
		Material:     item.Material,
		WearLayer:    item.WearLayer,
		TempMin:      item.TempMin,
		TempMax:      item.TempMax,
		OccasionTags: item.OccasionTags,
		StyleTags:    item.StyleTags,
		WearCount:    item.WearCount,
		Favorite:     item.Favorite,
		Status:       item.Status,
		Uri:          uri,
		CreatedAt:    item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
