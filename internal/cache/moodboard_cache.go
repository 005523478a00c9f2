package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/Samridhilal/MoodBoard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyTimeline = "mood:timeline:"

// MoodBoardCache caches each user's timeline in Redis. Boards are never
// edited or deleted, so the only write that can stale the cache is a
// create, and Invalidate handles that.
type MoodBoardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewMoodBoardCache returns a new MoodBoardCache.
func NewMoodBoardCache(rdb *redis.Client, ttl time.Duration) *MoodBoardCache {
	return &MoodBoardCache{rdb: rdb, ttl: ttl}
}

// GetTimeline returns the cached timeline or nil if miss.
func (c *MoodBoardCache) GetTimeline(ctx context.Context, userID int64) ([]dom.MoodBoard, error) {
	b, err := c.rdb.Get(ctx, timelineKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.MoodBoard
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetTimeline stores the timeline in cache.
func (c *MoodBoardCache) SetTimeline(ctx context.Context, userID int64, list []dom.MoodBoard) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, timelineKey(userID), b, c.ttl).Err()
}

// Invalidate drops the user's cached timeline (called after a create).
func (c *MoodBoardCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, timelineKey(userID)).Err()
}

func timelineKey(userID int64) string {
	return keyTimeline + strconv.FormatInt(userID, 10)
}
