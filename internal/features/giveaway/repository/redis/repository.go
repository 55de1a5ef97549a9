package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"giveaway-engine/internal/features/giveaway/models"
	"giveaway-engine/internal/features/giveaway/repository"
)

const keyPrefixGiveaway = "giveaway:"

var statusKeys = map[models.GiveawayStatus]string{
	models.GiveawayStatusDraft:     "giveaways:draft",
	models.GiveawayStatusActive:    "giveaways:active",
	models.GiveawayStatusPaused:    "giveaways:paused",
	models.GiveawayStatusClosed:    "giveaways:closed",
	models.GiveawayStatusCancelled: "giveaways:cancelled",
}

type redisRepository struct {
	client *redis.Client
}

func NewGiveawayRepository(client *redis.Client) repository.GiveawayRepository {
	return &redisRepository{client: client}
}

func makeGiveawayKey(id models.GiveawayID) string {
	return keyPrefixGiveaway + string(id)
}

func (r *redisRepository) Create(ctx context.Context, giveaway *models.Giveaway) error {
	data, err := json.Marshal(giveaway)
	if err != nil {
		return fmt.Errorf("failed to marshal giveaway: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeGiveawayKey(giveaway.ID), data, 0)
	pipe.SAdd(ctx, statusKeys[giveaway.Status], string(giveaway.ID))

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id models.GiveawayID) (*models.Giveaway, error) {
	data, err := r.client.Get(ctx, makeGiveawayKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrGiveawayNotFound
	}
	if err != nil {
		return nil, err
	}

	var giveaway models.Giveaway
	if err := json.Unmarshal(data, &giveaway); err != nil {
		return nil, err
	}

	return &giveaway, nil
}

// GetMany fetches giveaways in one batch. Absent ids are skipped, not
// errors; the participation query joins against ids that may have been
// deleted concurrently.
func (r *redisRepository) GetMany(ctx context.Context, ids []models.GiveawayID) ([]*models.Giveaway, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makeGiveawayKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	giveaways := make([]*models.Giveaway, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var giveaway models.Giveaway
		if err := json.Unmarshal([]byte(raw), &giveaway); err != nil {
			return nil, err
		}
		giveaways = append(giveaways, &giveaway)
	}

	return giveaways, nil
}

func (r *redisRepository) Update(ctx context.Context, giveaway *models.Giveaway) error {
	data, err := json.Marshal(giveaway)
	if err != nil {
		return fmt.Errorf("failed to marshal giveaway: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeGiveawayKey(giveaway.ID), data, 0)
	for status, key := range statusKeys {
		if status == giveaway.Status {
			pipe.SAdd(ctx, key, string(giveaway.ID))
		} else {
			pipe.SRem(ctx, key, string(giveaway.ID))
		}
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) Delete(ctx context.Context, id models.GiveawayID) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, makeGiveawayKey(id))
	for _, key := range statusKeys {
		pipe.SRem(ctx, key, string(id))
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisRepository) ListByStatus(ctx context.Context, status models.GiveawayStatus) ([]*models.Giveaway, error) {
	ids, err := r.client.SMembers(ctx, statusKeys[status]).Result()
	if err != nil {
		return nil, err
	}

	giveawayIDs := make([]models.GiveawayID, len(ids))
	for i, id := range ids {
		giveawayIDs[i] = models.GiveawayID(id)
	}
	return r.GetMany(ctx, giveawayIDs)
}

// UpdateDrawCAS writes the draw result only if DrawAt has not moved since
// prev was read. WATCH aborts the transaction when the document changes
// between read and write.
func (r *redisRepository) UpdateDrawCAS(ctx context.Context, giveaway *models.Giveaway, prev *models.Giveaway) error {
	key := makeGiveawayKey(giveaway.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return repository.ErrGiveawayNotFound
		}
		if err != nil {
			return err
		}

		var current models.Giveaway
		if err := json.Unmarshal(data, &current); err != nil {
			return err
		}

		if !equalDrawAt(&current, prev) {
			return repository.ErrDrawConflict
		}

		updated, err := json.Marshal(giveaway)
		if err != nil {
			return fmt.Errorf("failed to marshal giveaway: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)

	if err == redis.TxFailedErr {
		return repository.ErrDrawConflict
	}
	return err
}

func equalDrawAt(a, b *models.Giveaway) bool {
	if a.DrawAt == nil || b.DrawAt == nil {
		return a.DrawAt == nil && b.DrawAt == nil
	}
	return a.DrawAt.Equal(*b.DrawAt)
}
