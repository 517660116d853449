package services

import (
	"context"
	"fmt"
	"log"

	"outfitapi/models"
	"outfitapi/outfit"
)

// BuildCatalogView converts wardrobe rows into the engine's validated
// catalog. Stats come from the favorites provider when available; a failing
// provider degrades every item to a neutral score instead of failing the
// generation.
func BuildCatalogView(ctx context.Context, clothes []models.Clothing, favorites FavoritesProvider, userID uint) (*outfit.CatalogView, error) {
	var stats map[uint]FavoriteStat
	if favorites != nil {
		loaded, err := favorites.GetUserStats(ctx, userID)
		if err != nil {
			log.Printf("[User %v] Favorites provider unavailable, scoring neutral: %v", userID, err)
		} else {
			stats = loaded
		}
	}

	items := make([]outfit.Item, 0, len(clothes))
	for _, c := range clothes {
		item := outfit.Item{
			ID:           c.ID,
			Name:         c.Name,
			Category:     outfit.Category(c.ClothingType),
			Color:        c.Color,
			Material:     c.Material,
			Pattern:      c.Pattern,
			Formality:    c.Formality,
			Layer:        outfit.WearLayer(c.WearLayer),
			Neckline:     c.Neckline,
			SleeveLength: c.SleeveLength,
			TempMin:      c.TempMin,
			TempMax:      c.TempMax,
			OccasionTags: c.OccasionTags,
			StyleTags:    c.StyleTags,
		}
		if stat, ok := stats[c.ID]; ok {
			item.WearCount = stat.WearCount
			item.Favorite = stat.Favorite
			item.FavoriteScore = stat.FavoriteScore
		}
		items = append(items, item)
	}

	view, err := outfit.NewCatalogView(items)
	if err != nil {
		return nil, fmt.Errorf("wardrobe of user %v is malformed: %w", userID, err)
	}
	return view, nil
}
