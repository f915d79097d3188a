package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"road-snap-service/internal/domain"
	"road-snap-service/internal/platform/obs"
)

// keyPrefix namespaces cache entries so the instance can be shared.
const keyPrefix = "speedlimit:"

// redisEntry is the stored representation of one speed limit.
type redisEntry struct {
	Limit float64 `json:"limit"`
	Units string  `json:"units"`
}

// RedisSpeedLimitCache is a Redis-backed cache mapping place IDs to posted
// speed limits. Entries expire after TTL; posted limits change rarely, so
// long TTLs are fine.
type RedisSpeedLimitCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSpeedLimitCache(client *redis.Client, ttl time.Duration) *RedisSpeedLimitCache {
	return &RedisSpeedLimitCache{Client: client, TTL: ttl}
}

// Fetch cached speed limits for the given place IDs.
func (r *RedisSpeedLimitCache) GetMany(
	ctx context.Context,
	placeIDs []domain.PlaceID,
) (_ map[domain.PlaceID]domain.SpeedLimit, err error) {
	defer obs.Time(ctx, "speedlimit.rediscache.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("speed limit cache: redis client is nil")
	}

	if len(placeIDs) == 0 {
		return map[domain.PlaceID]domain.SpeedLimit{}, nil
	}

	seen := map[domain.PlaceID]struct{}{}
	uniq := make([]domain.PlaceID, 0, len(placeIDs))
	keys := make([]string, 0, len(placeIDs))
	for _, id := range placeIDs {
		id = domain.PlaceID(strings.TrimSpace(string(id)))
		if id == "" {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
		keys = append(keys, keyPrefix+string(id))
	}

	if len(uniq) == 0 {
		return map[domain.PlaceID]domain.SpeedLimit{}, nil
	}

	values, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get speed limit cache: redis mget: %w", err)
	}

	out := make(map[domain.PlaceID]domain.SpeedLimit, len(uniq))
	for i, v := range values {
		if v == nil {
			continue
		}

		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("get speed limit cache: unexpected value type %T for %q", v, uniq[i])
		}

		var entry redisEntry
		if err := json.Unmarshal([]byte(s), &entry); err != nil {
			// Treat undecodable entries as misses; they get overwritten on the next put.
			continue
		}

		out[uniq[i]] = domain.SpeedLimit{
			PlaceID: uniq[i],
			Limit:   entry.Limit,
			Units:   domain.SpeedUnit(entry.Units),
		}
	}

	return out, nil
}

// Store place ID -> speed limit mappings in the cache.
func (r *RedisSpeedLimitCache) PutMany(ctx context.Context, limits []domain.SpeedLimit) error {
	if r.Client == nil {
		return errors.New("speed limit cache: redis client is nil")
	}

	if len(limits) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for _, l := range limits {
		if strings.TrimSpace(string(l.PlaceID)) == "" {
			return fmt.Errorf("insert speed limit cache: empty place ID key")
		}

		payload, err := json.Marshal(redisEntry{Limit: l.Limit, Units: string(l.Units)})
		if err != nil {
			return fmt.Errorf("insert speed limit cache place_id=%q: marshal: %w", l.PlaceID, err)
		}

		pipe.Set(ctx, keyPrefix+string(l.PlaceID), payload, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert speed limit cache: redis pipeline: %w", err)
	}

	return nil
}
