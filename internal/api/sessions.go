package api

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore хранит активные сессии в Redis: ключ session:<jti> -> user id
// с TTL. Токен сам по себе — подписанный JWT; whitelist в Redis нужен,
// чтобы logout реально отзывал сессию до истечения срока токена.
// Если Redis недоступен, работаем в деградированном режиме: подписи JWT
// достаточно, отзыв не работает
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore создает хранилище сессий
// client может быть nil — тогда whitelist отключен
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if client == nil {
		log.Println("⚠️ Sessions: Redis недоступен, отзыв сессий отключен (только проверка подписи JWT)")
	}
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

// Save регистрирует сессию
func (s *SessionStore) Save(ctx context.Context, jti, userID string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, sessionKey(jti), userID, s.ttl).Err()
}

// Exists проверяет, что сессия активна (не отозвана и не истекла)
func (s *SessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	if s.client == nil {
		return true, nil // Деградированный режим
	}
	n, err := s.client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete отзывает сессию (logout)
func (s *SessionStore) Delete(ctx context.Context, jti string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, sessionKey(jti)).Err()
}
