package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"talenthub/internal/cache"
	"talenthub/internal/model"
	"talenthub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// UserService exposes read operations over user records. The session
// resolution path does NOT go through this service; it reads the
// repository directly so roles are never served stale from cache.
type UserService interface {
	// GetProfile returns a user's public identity view.
	GetProfile(ctx context.Context, id uuid.UUID) (model.Identity, error)

	// Directory returns the restricted admin projection of all records.
	Directory(ctx context.Context) ([]model.DirectoryEntry, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id)
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Identity
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Identity{}, err
	}

	identity := user.Identity()
	if payload, err := json.Marshal(identity); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, profileCacheTTL)
	}
	return identity, nil
}

func (s *userService) Directory(ctx context.Context) ([]model.DirectoryEntry, error) {
	return s.repo.ListDirectory(ctx)
}
