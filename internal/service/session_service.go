package service

import (
	"context"
	"fmt"
	"time"

	"clinic-records-api/internal/domain/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrInvalidToken is returned when a token is not (or no longer) in the allow-list.
var ErrInvalidToken = apperror.Authentication("Token is invalid or expired")

// revokePairScript deletes the refresh key and, only if it existed, the access key.
// Returns the number of refresh keys removed.
var revokePairScript = redis.NewScript(`
	local removed = redis.call('DEL', KEYS[1])
	if removed == 1 then
		redis.call('DEL', KEYS[2])
	end
	return removed
`)

const (
	AccessTokenKeyPrefix  = "access_token:"
	RefreshTokenKeyPrefix = "refresh_token:"

	scanBatchSize = 100
)

// SessionService keeps the allow-list of issued tokens in Redis.
// A token is valid only while its key exists.
type SessionService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSessionService(redisClient *redis.Client, log *logrus.Logger) *SessionService {
	return &SessionService{
		redisClient: redisClient,
		log:         log,
	}
}

func accessKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", AccessTokenKeyPrefix, userID, tokenID)
}

func refreshKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", RefreshTokenKeyPrefix, userID, tokenID)
}

// Store registers a freshly issued access/refresh pair.
func (s *SessionService) Store(ctx context.Context, userID uuid.UUID, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, accessKey(userID, accessID), "valid", accessTTL)
	pipe.Set(ctx, refreshKey(userID, refreshID), "valid", refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to store tokens for user %s: %+v", userID, err)
		return fmt.Errorf("store tokens for user %s: %w", userID, err)
	}
	return nil
}

func (s *SessionService) IsAccessTokenActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	return s.exists(ctx, accessKey(userID, tokenID))
}

func (s *SessionService) exists(ctx context.Context, key string) (bool, error) {
	count, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to check token %s: %+v", key, err)
		return false, err
	}
	return count > 0, nil
}

// RevokeRefreshToken removes a single refresh token. Revoking a token twice fails.
func (s *SessionService) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	removed, err := s.redisClient.Del(ctx, refreshKey(userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to revoke refresh token: %+v", err)
		return err
	}
	if removed == 0 {
		return ErrInvalidToken
	}
	return nil
}

// RevokePair removes a refresh token together with the access token presented alongside it.
// Nothing is removed when the refresh token is not active.
func (s *SessionService) RevokePair(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error {
	removed, err := revokePairScript.Run(ctx, s.redisClient, []string{refreshKey(userID, refreshID), accessKey(userID, accessID)}).Int()
	if err != nil {
		s.log.Warnf("Failed to revoke tokens for user %s: %+v", userID, err)
		return fmt.Errorf("revoke tokens for user %s: %w", userID, err)
	}
	if removed == 0 {
		return ErrInvalidToken
	}
	return nil
}

// RevokeAll removes every token issued to userID and returns how many keys were deleted.
func (s *SessionService) RevokeAll(ctx context.Context, userID uuid.UUID) (int, error) {
	total := 0
	for _, prefix := range []string{AccessTokenKeyPrefix, RefreshTokenKeyPrefix} {
		pattern := fmt.Sprintf("%s%s:*", prefix, userID)
		iter := s.redisClient.Scan(ctx, 0, pattern, scanBatchSize).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			s.log.Warnf("Failed to scan tokens for user %s: %+v", userID, err)
			return total, err
		}
		if len(keys) == 0 {
			continue
		}

		removed, err := s.redisClient.Del(ctx, keys...).Result()
		if err != nil {
			s.log.Warnf("Failed to delete tokens for user %s: %+v", userID, err)
			return total, err
		}
		total += int(removed)
	}

	s.log.Debugf("Revoked %d tokens for user %s", total, userID)
	return total, nil
}
