package utils

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-redis/redis/v8"
)

// ProfileStatsStore keeps the live social counters (profile views and post
// impressions) in redis. Postgres only holds the registration-time baseline;
// every read merges the redis delta on top, so a redis outage degrades to
// stale counters instead of failed requests.
type ProfileStatsStore struct {
	inner     *redis.Client
	keyParser RedisKeyParser
}

const (
	StatViewedProfile = "viewed_profile"
	StatImpressions   = "impressions"
)

var ctx = context.Background()

func GetProfileStatsStore() (*ProfileStatsStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &ProfileStatsStore{
		inner:     redisClient,
		keyParser: RedisKeyParser{delimiter: "__"},
	}, nil
}

type RedisKeyParser struct {
	delimiter string
}

func (r RedisKeyParser) ValidateId(id string) bool {
	return !strings.Contains(id, r.delimiter)
}

func (r RedisKeyParser) EncodeStatKey(kind string, userId string) (string, error) {
	if !r.ValidateId(kind) || !r.ValidateId(userId) {
		return "", fmt.Errorf("invalid stat kind or userId")
	}
	return fmt.Sprintf("%s%s%s", kind, r.delimiter, userId), nil
}

func (r RedisKeyParser) DecodeStatKey(key string) (string, string, error) {
	splits := strings.Split(key, r.delimiter)
	if (len(splits)) != 2 {
		return "", "", fmt.Errorf("invalid key: %s", key)
	}
	return splits[0], splits[1], nil
}

// IncrementStat bumps the given counter for one user by one.
func (s *ProfileStatsStore) IncrementStat(kind string, userId string) error {
	key, err := s.keyParser.EncodeStatKey(kind, userId)
	if err != nil {
		return err
	}
	return s.inner.Incr(ctx, key).Err()
}

// IncrementStatBatch bumps the given counter for every listed user by one,
// pipelined into a single round trip.
func (s *ProfileStatsStore) IncrementStatBatch(kind string, userIds []string) error {
	if len(userIds) == 0 {
		return nil
	}
	pipe := s.inner.Pipeline()
	for _, uid := range userIds {
		key, err := s.keyParser.EncodeStatKey(kind, uid)
		if err != nil {
			return err
		}
		pipe.Incr(ctx, key)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetStat returns the current delta of the given counter for one user.
// A key that was never incremented reads as 0.
func (s *ProfileStatsStore) GetStat(kind string, userId string) (int64, error) {
	key, err := s.keyParser.EncodeStatKey(kind, userId)
	if err != nil {
		return 0, err
	}
	val, err := s.inner.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
