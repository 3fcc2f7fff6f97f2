package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type SessionData struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func (r *SessionRepository) StoreSession(ctx context.Context, data SessionData, ttl time.Duration) error {
	key := fmt.Sprintf("session:user:%d", data.UserID)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	// reverse lookup token -> user_id for quick validation
	tokenKey := fmt.Sprintf("session:lookup:%s", data.Token)
	if err := r.client.Set(ctx, tokenKey, data.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session lookup: %w", err)
	}

	return nil
}

// ValidateToken checks if a token has a live session and returns the user id.
func (r *SessionRepository) ValidateToken(ctx context.Context, token string) (uint, error) {
	tokenKey := fmt.Sprintf("session:lookup:%s", token)

	userID, err := r.client.Get(ctx, tokenKey).Uint64()
	if err != nil {
		if err == redis.Nil {
			return 0, errors.New("session not found or expired")
		}
		return 0, fmt.Errorf("failed to validate session: %w", err)
	}

	return uint(userID), nil
}

// DeleteSession revokes both the session record and the token lookup.
func (r *SessionRepository) DeleteSession(ctx context.Context, userID uint, token string) error {
	key := fmt.Sprintf("session:user:%d", userID)
	tokenKey := fmt.Sprintf("session:lookup:%s", token)

	if err := r.client.Del(ctx, key, tokenKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
