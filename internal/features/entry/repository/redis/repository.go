package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"giveaway-engine/internal/features/entry/models"
	"giveaway-engine/internal/features/entry/repository"
	gmodels "giveaway-engine/internal/features/giveaway/models"
)

const (
	keyPrefixEntry       = "entry:"
	keyPrefixParticipant = "participant:"
)

type redisRepository struct {
	client *redis.Client
}

func NewEntryRepository(client *redis.Client) repository.EntryRepository {
	return &redisRepository{client: client}
}

func makeEntryKey(id gmodels.EntryID) string {
	return keyPrefixEntry + string(id)
}

// makeEntriesKey is the per-giveaway index: a sorted set scored by creation
// time in nanoseconds. Redis orders equal scores lexically by member, which
// keeps the draw order stable even for same-instant entries.
func makeEntriesKey(giveawayID gmodels.GiveawayID) string {
	return fmt.Sprintf("giveaway:%s:entries", giveawayID)
}

func makeParticipantKey(p models.ParticipantIdentity) string {
	return keyPrefixParticipant + p.Key() + ":entries"
}

func (r *redisRepository) Create(ctx context.Context, entry *models.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeEntryKey(entry.ID), data, 0)
	pipe.ZAdd(ctx, makeEntriesKey(entry.GiveawayID), redis.Z{
		Score:  float64(entry.CreatedAt.UnixNano()),
		Member: string(entry.ID),
	})
	pipe.SAdd(ctx, makeParticipantKey(entry.Participant), string(entry.ID))

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id gmodels.EntryID) (*models.Entry, error) {
	data, err := r.client.Get(ctx, makeEntryKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	var entry models.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *redisRepository) List(ctx context.Context, giveawayID gmodels.GiveawayID) ([]*models.Entry, error) {
	ids, err := r.client.ZRange(ctx, makeEntriesKey(giveawayID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefixEntry + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*models.Entry, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index member without a document; skip rather than fail the draw
			// snapshot over a partially deleted entry.
			continue
		}
		var entry models.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *redisRepository) Count(ctx context.Context, giveawayID gmodels.GiveawayID) (int64, error) {
	return r.client.ZCard(ctx, makeEntriesKey(giveawayID)).Result()
}

func (r *redisRepository) Disqualify(ctx context.Context, id gmodels.EntryID) error {
	entry, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry.Disqualified = true
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	return r.client.Set(ctx, makeEntryKey(id), data, 0).Err()
}

func (r *redisRepository) DeleteAllForGiveaway(ctx context.Context, giveawayID gmodels.GiveawayID) error {
	entries, err := r.List(ctx, giveawayID)
	if err != nil {
		return fmt.Errorf("failed to list entries for cascade delete: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, entry := range entries {
		pipe.Del(ctx, makeEntryKey(entry.ID))
		pipe.SRem(ctx, makeParticipantKey(entry.Participant), string(entry.ID))
	}
	pipe.Del(ctx, makeEntriesKey(giveawayID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

func (r *redisRepository) ListByParticipant(ctx context.Context, participant models.ParticipantIdentity) ([]*models.Entry, error) {
	ids, err := r.client.SMembers(ctx, makeParticipantKey(participant)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefixEntry + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*models.Entry, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var entry models.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
