package storage

import (
	"context"
	"encoding/json"
	"errors"
	"estatehub/backend/internal/models"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	unreadTTL = 10 * time.Minute

	// NotificationChannelPrefix + userID is the pub/sub channel of one user.
	NotificationChannelPrefix = "notifications:"
)

var incrIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("INCR", KEYS[1])
end
return 0
`)

func banKey(userID string) string    { return "ban:" + userID }
func unreadKey(userID string) string { return "unread:" + userID }

// SetBanMarker mirrors a ban into Redis under ban:<id>.
// ttl <= 0 marks a permanent ban.
func (s *Service) SetBanMarker(ctx context.Context, userID string, ttl time.Duration) error {
	if s.Redis == nil {
		return nil
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.Redis.Set(ctx, banKey(userID), "active", ttl).Err()
}

func (s *Service) ClearBanMarker(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, banKey(userID)).Err()
}

// IsUserBanned перевіряє статус бану в Redis
func (s *Service) IsUserBanned(ctx context.Context, userID string) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	status, err := s.Redis.Get(ctx, banKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}

// GetCachedUnread returns the cached unread counter; ok is false on a cache miss.
func (s *Service) GetCachedUnread(ctx context.Context, userID string) (int64, bool, error) {
	if s.Redis == nil {
		return 0, false, nil
	}
	val, err := s.Redis.Get(ctx, unreadKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (s *Service) SetCachedUnread(ctx context.Context, userID string, count int64) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(ctx, unreadKey(userID), count, unreadTTL).Err()
}

// IncrCachedUnread bumps the counter only when it is already cached,
// otherwise the next read recounts from the database.
func (s *Service) IncrCachedUnread(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return incrIfExists.Run(ctx, s.Redis, []string{unreadKey(userID)}).Err()
}

func (s *Service) InvalidateCachedUnread(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, unreadKey(userID)).Err()
}

// PublishNotification публікує сповіщення в Redis Pub/Sub
func (s *Service) PublishNotification(ctx context.Context, n *models.Notification) error {
	if s.Redis == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.Redis.Publish(ctx, NotificationChannelPrefix+n.UserID, payload).Err()
}

// SubscribeNotifications listens on every user's notification channel.
func (s *Service) SubscribeNotifications(ctx context.Context) *redis.PubSub {
	return s.Redis.PSubscribe(ctx, NotificationChannelPrefix+"*")
}
