package repo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	logx "github.com/sme-marketplace/server/pkg/logger"
)

var errMissingOwner = errors.New("owner is required")

type RedisSelectionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSelectionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSelectionRepository {
	return &RedisSelectionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSelectionRepository) bookmarksKey(owner string, category model.Category) string {
	return fmt.Sprintf("selection:%s:%s:bookmarks", owner, category)
}

func (r *RedisSelectionRepository) comparisonKey(owner string, category model.Category) string {
	return fmt.Sprintf("selection:%s:%s:compare", owner, category)
}

func (r *RedisSelectionRepository) AddBookmark(ctx context.Context, owner string, category model.Category, itemID string) error {
	if err := checkArgs(owner, category); err != nil {
		return err
	}
	key := r.bookmarksKey(owner, category)

	if err := r.rdb.SAdd(ctx, key, itemID).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to add bookmark to redis")
		return errx.WrapRedis(err)
	}
	return r.touch(ctx, key)
}

func (r *RedisSelectionRepository) RemoveBookmark(ctx context.Context, owner string, category model.Category, itemID string) error {
	if err := checkArgs(owner, category); err != nil {
		return err
	}
	key := r.bookmarksKey(owner, category)

	if err := r.rdb.SRem(ctx, key, itemID).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to remove bookmark from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSelectionRepository) ListBookmarks(ctx context.Context, owner string, category model.Category) ([]string, error) {
	if err := checkArgs(owner, category); err != nil {
		return nil, err
	}
	key := r.bookmarksKey(owner, category)

	ids, err := r.rdb.SMembers(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load bookmarks from redis")
		return nil, errx.WrapRedis(err)
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *RedisSelectionRepository) SetComparison(ctx context.Context, owner string, category model.Category, itemIDs []string) error {
	if err := checkArgs(owner, category); err != nil {
		return err
	}
	key := r.comparisonKey(owner, category)
	ids := comparisonIDs(itemIDs)

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(ids) == 0 {
			return nil
		}
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		pipe.RPush(ctx, key, values...)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store comparison in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSelectionRepository) LoadComparison(ctx context.Context, owner string, category model.Category) ([]string, error) {
	if err := checkArgs(owner, category); err != nil {
		return nil, err
	}
	key := r.comparisonKey(owner, category)

	ids, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load comparison from redis")
		return nil, errx.WrapRedis(err)
	}
	return ids, nil
}

// extend TTL on touch
func (r *RedisSelectionRepository) touch(ctx context.Context, key string) error {
	if r.ttl <= 0 {
		return nil
	}
	ok, err := r.rdb.Expire(ctx, key, r.ttl).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
		return errx.WrapRedis(err)
	}
	if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on selection key")
	}
	return nil
}

func checkArgs(owner string, category model.Category) error {
	if owner == "" {
		return errx.InvalidInput(errMissingOwner)
	}
	if !category.Valid() {
		return errx.UnknownCategory(category.String())
	}
	return nil
}

// comparisonIDs drops blanks and duplicates and keeps the first MaxCompareItems ids.
func comparisonIDs(in []string) []string {
	out := make([]string, 0, model.MaxCompareItems)
	for _, id := range in {
		if id == "" || slices.Contains(out, id) {
			continue
		}
		if len(out) == model.MaxCompareItems {
			break
		}
		out = append(out, id)
	}
	return out
}

var _ model.SelectionRepository = (*RedisSelectionRepository)(nil)
