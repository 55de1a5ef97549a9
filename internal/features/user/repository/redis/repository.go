package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"giveaway-engine/internal/features/user/models"
	"giveaway-engine/internal/features/user/repository"
)

const keyPrefixUser = "user:"

type redisRepository struct {
	client *redis.Client
}

func NewUserDirectory(client *redis.Client) repository.UserDirectory {
	return &redisRepository{client: client}
}

func makeUserKey(id string) string {
	return keyPrefixUser + id
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	data, err := r.client.Get(ctx, makeUserKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *redisRepository) GetMany(ctx context.Context, ids []string) (map[string]*models.User, error) {
	if len(ids) == 0 {
		return map[string]*models.User{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makeUserKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make(map[string]*models.User, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			continue
		}
		users[ids[i]] = &user
	}

	return users, nil
}

func (r *redisRepository) Upsert(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return r.client.Set(ctx, makeUserKey(user.ID), data, 0).Err()
}
