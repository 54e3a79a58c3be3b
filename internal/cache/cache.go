package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/crewapp/crew-scheduler/internal/models"
)

const monthTTL = 5 * time.Minute

// Cache keeps per-user month listings of day-offs in Redis. A nil *Cache
// (no REDIS_ADDR configured) degrades to a permanent miss.
type Cache struct {
	rdb *redis.Client
}

func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func monthKey(userID uint, year int, month int) string {
	return fmt.Sprintf("dayoff:%d:%04d-%02d", userID, year, month)
}

func (c *Cache) GetMonth(ctx context.Context, userID uint, year, month int) ([]models.DayOff, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, monthKey(userID, year, month)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("cache get error:", err)
		}
		return nil, false
	}

	var items []models.DayOff
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *Cache) SetMonth(ctx context.Context, userID uint, year, month int, items []models.DayOff) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, monthKey(userID, year, month), raw, monthTTL).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

// InvalidateUser drops every cached month for the user. Mutations always go
// through here, so a stale month never outlives the write that changed it.
func (c *Cache) InvalidateUser(ctx context.Context, userID uint) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("dayoff:%d:*", userID)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache invalidate error:", err)
	}
}
