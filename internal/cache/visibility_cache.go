package cache

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ExcludedSetTTL bounds staleness if an invalidation is ever lost; every
// collect/uncollect/hide invalidates explicitly.
const ExcludedSetTTL = 2 * time.Minute

// VisibilityCache caches, per user, the set of message IDs excluded from
// their nearby feed (collected or hidden). All methods are safe on a nil
// receiver or with no Redis behind them, so the server runs uncached when
// Redis is down.
type VisibilityCache struct {
	redis *RedisCache
}

// NewVisibilityCache creates a new visibility cache
func NewVisibilityCache(redis *RedisCache) *VisibilityCache {
	return &VisibilityCache{redis: redis}
}

func excludedKey(userID uint) string {
	return fmt.Sprintf("excluded:%d", userID)
}

// GetExcluded retrieves the cached excluded message IDs for a user
func (vc *VisibilityCache) GetExcluded(userID uint) ([]uint, bool) {
	if vc == nil || vc.redis == nil {
		return nil, false
	}
	data, err := vc.redis.Get(excludedKey(userID))
	if err != nil || data == nil {
		return nil, false
	}

	var ids []uint
	if err := msgpack.Unmarshal(data, &ids); err != nil {
		return nil, false
	}

	return ids, true
}

// SetExcluded caches the excluded message IDs for a user
func (vc *VisibilityCache) SetExcluded(userID uint, ids []uint) error {
	if vc == nil || vc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(ids)
	if err != nil {
		return err
	}

	return vc.redis.Set(excludedKey(userID), data, ExcludedSetTTL)
}

// InvalidateExcluded drops the cached set after any visibility change
func (vc *VisibilityCache) InvalidateExcluded(userID uint) error {
	if vc == nil || vc.redis == nil {
		return nil
	}
	return vc.redis.Delete(excludedKey(userID))
}
