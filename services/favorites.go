package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"outfitapi/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"gorm.io/gorm"
)

// FavoriteStat is the per-item usage signal the scorer consumes.
type FavoriteStat struct {
	WearCount     int
	Favorite      bool
	FavoriteScore float64 // in [0,1]
}

// FavoritesProvider returns usage/favorite stats for a user's wardrobe.
// Optional collaborator: when it errors, callers score with neutral stats.
type FavoritesProvider interface {
	GetUserStats(ctx context.Context, userID uint) (map[uint]FavoriteStat, error)
}

// wear counts saturate the favorite score at this many wears
const wearCountCeiling = 20

// FavoritesService derives stats from wear counters on the clothing rows,
// cached per user so a burst of generations does not re-query the table.
type FavoritesService struct {
	db    *gorm.DB
	cache *cache.LoadableCache[map[uint]FavoriteStat]
}

func NewFavoritesService(db *gorm.DB) (*FavoritesService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 24, // 16MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache, store.WithExpiration(5*time.Minute))

	svc := &FavoritesService{db: db}
	loadFunction := func(ctx context.Context, key any) (map[uint]FavoriteStat, error) {
		userID, ok := key.(uint)
		if !ok {
			return nil, fmt.Errorf("invalid key type provided to favorites cache: expected uint, got %T", key)
		}
		log.Printf("CACHE MISS for favorites of user %v", userID)
		stats, err := svc.loadUserStats(ctx, userID)
		return stats, err
	}
	svc.cache = cache.NewLoadable[map[uint]FavoriteStat](
		loadFunction,
		cache.New[map[uint]FavoriteStat](ristrettoStore),
	)
	return svc, nil
}

func (s *FavoritesService) GetUserStats(ctx context.Context, userID uint) (map[uint]FavoriteStat, error) {
	return s.cache.Get(ctx, userID)
}

func (s *FavoritesService) loadUserStats(ctx context.Context, userID uint) (map[uint]FavoriteStat, error) {
	var rows []models.Clothing
	if err := s.db.WithContext(ctx).Select("id", "wear_count", "favorite").
		Where("owner_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load wear stats for user %v: %w", userID, err)
	}
	stats := make(map[uint]FavoriteStat, len(rows))
	for _, row := range rows {
		stats[row.ID] = FavoriteStat{
			WearCount:     row.WearCount,
			Favorite:      row.Favorite,
			FavoriteScore: favoriteScore(row.WearCount, row.Favorite),
		}
	}
	return stats, nil
}

// favoriteScore is monotonic in wear count, bounded by 1, with the explicit
// favorite flag worth half the scale on its own.
func favoriteScore(wearCount int, favorite bool) float64 {
	score := 0.0
	if favorite {
		score += 0.5
	}
	usage := float64(wearCount) / wearCountCeiling
	if usage > 1 {
		usage = 1
	}
	score += 0.5 * usage
	return score
}
