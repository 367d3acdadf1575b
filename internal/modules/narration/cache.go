package narration

import (
	"context"
	"errors"

	"github.com/slidecast/core/internal/models"
	"gorm.io/gorm"
)

// CacheStore reads and writes the durable script cache keyed by content hash.
type CacheStore interface {
	// Lookup returns the entry for hash, or nil on a miss.
	Lookup(ctx context.Context, hash string) (*models.ScriptCacheModel, error)
	// Save persists the entry unless one with the same hash already exists.
	Save(ctx context.Context, entry *models.ScriptCacheModel) error
}

type gormCache struct {
	db *gorm.DB
}

// NewGormCache wraps a MySQL connection as the script cache.
func NewGormCache(db *gorm.DB) CacheStore {
	return &gormCache{db: db}
}

func (c *gormCache) Lookup(ctx context.Context, hash string) (*models.ScriptCacheModel, error) {
	var entry models.ScriptCacheModel
	if err := c.db.WithContext(ctx).Where("content_hash = ?", hash).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (c *gormCache) Save(ctx context.Context, entry *models.ScriptCacheModel) error {
	// Concurrent misses for the same hash may race here; FirstOrCreate on the
	// unique hash column makes the first writer win and the rest no-ops.
	return c.db.WithContext(ctx).Where("content_hash = ?", entry.ContentHash).FirstOrCreate(entry).Error
}
