package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

// MemoryRepository keeps accounts in process memory. The mutex makes
// Create and CreateOrGetExternal atomic with respect to the uniqueness
// checks.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUniqueLocked(user); err != nil {
		return nil, err
	}
	return r.insertLocked(user), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r *MemoryRepository) CreateOrGetExternal(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Provider == user.Provider && u.ExternalID == user.ExternalID {
			c := *u
			return &c, nil
		}
	}
	if err := r.checkUniqueLocked(user); err != nil {
		return nil, err
	}
	return r.insertLocked(user), nil
}

func (r *MemoryRepository) checkUniqueLocked(user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("username: %w", common.ErrorAlreadyExists)
		}
		if u.Email == user.Email {
			return fmt.Errorf("email: %w", common.ErrorAlreadyExists)
		}
	}
	return nil
}

func (r *MemoryRepository) insertLocked(user *models.User) *models.User {
	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.users[stored.ID] = &stored

	c := stored
	return &c
}
