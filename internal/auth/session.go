package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyFmt = "session:%s"

// SessionIdleTimeout is how long a session survives without requests.
const SessionIdleTimeout = 30 * time.Minute

func SetSession(ctx context.Context, rdb *redis.Client, userID string, token string, duration time.Duration) error {
	key := fmt.Sprintf(sessionKeyFmt, userID)
	return rdb.Set(ctx, key, token, duration).Err()
}

func GetSession(ctx context.Context, rdb *redis.Client, userID string) (string, error) {
	key := fmt.Sprintf(sessionKeyFmt, userID)
	return rdb.Get(ctx, key).Result()
}

func DeleteSession(ctx context.Context, rdb *redis.Client, userID string) error {
	key := fmt.Sprintf(sessionKeyFmt, userID)
	return rdb.Del(ctx, key).Err()
}

// OnlineUserCount returns the number of unique users with active sessions.
func OnlineUserCount(ctx context.Context, rdb *redis.Client) (int, error) {
	var cursor uint64
	userIDs := make(map[string]struct{})
	for {
		keys, next, err := rdb.Scan(ctx, cursor, "session:*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			id, ok := strings.CutPrefix(key, "session:")
			if ok && id != "" {
				userIDs[id] = struct{}{}
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return len(userIDs), nil
}
