// Package users stores accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

// Repository persists accounts. Username and email are unique; a clash is
// reported as common.ErrorAlreadyExists and lookups of missing rows as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// CreateOrGetExternal returns the account linked to
	// (user.Provider, user.ExternalID), creating it from user if missing.
	CreateOrGetExternal(ctx context.Context, user *models.User) (*models.User, error)
}
