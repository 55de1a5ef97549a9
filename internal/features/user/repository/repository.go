package repository

import (
	"context"
	"errors"

	"giveaway-engine/internal/features/user/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserDirectory is the identity-lookup collaborator. Winner enrichment
// degrades gracefully when a user is absent, so GetMany returns what it
// finds keyed by id rather than failing the batch.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetMany(ctx context.Context, ids []string) (map[string]*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}
