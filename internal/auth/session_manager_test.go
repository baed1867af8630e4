package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talenthub/internal/errors"
	"talenthub/internal/model"
)

// memorySessionStore is an in-memory SessionStore for tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]uuid.UUID)}
}

func (s *memorySessionStore) Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return uuid.Nil, apperrors.ErrInvalidSession
	}
	return userID, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// memoryIdentitySource serves users from a map, like a credential store
// whose records can be mutated between calls.
type memoryIdentitySource struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newMemoryIdentitySource(users ...*model.User) *memoryIdentitySource {
	src := &memoryIdentitySource{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		src.users[u.ID] = u
	}
	return src
}

func (s *memoryIdentitySource) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memoryIdentitySource) set(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *memoryIdentitySource) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func newTestManager(t *testing.T, users ...*model.User) (*SessionManager, *memorySessionStore, *memoryIdentitySource) {
	t.Helper()
	store := newMemorySessionStore()
	source := newMemoryIdentitySource(users...)
	codec := NewTokenCodec("test-secret", time.Hour)
	return NewSessionManager(codec, store, source), store, source
}

func TestSessionManager_CreateResolve(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice", AccountType: model.AccountTypeTalent}
	manager, _, _ := newTestManager(t, user)
	ctx := context.Background()

	token, err := manager.Create(ctx, user.Identity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, model.AccountTypeTalent, identity.AccountType)
}

func TestSessionManager_DestroyInvalidatesToken(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice"}
	manager, _, _ := newTestManager(t, user)
	ctx := context.Background()

	token, err := manager.Create(ctx, user.Identity())
	require.NoError(t, err)

	require.NoError(t, manager.Destroy(ctx, token))

	_, err = manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)

	// Destroy is idempotent, including on garbage.
	assert.NoError(t, manager.Destroy(ctx, token))
	assert.NoError(t, manager.Destroy(ctx, "not-even-a-token"))
}

func TestSessionManager_ResolveReflectsRoleChanges(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice", Admin: false}
	manager, _, source := newTestManager(t, user)
	ctx := context.Background()

	token, err := manager.Create(ctx, user.Identity())
	require.NoError(t, err)

	identity, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	require.False(t, identity.Admin)

	// Promote in storage without touching the session.
	promoted := *user
	promoted.Admin = true
	source.set(&promoted)

	identity, err = manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, identity.Admin, "resolve must re-fetch the record, not cache roles")
}

func TestSessionManager_ResolveFailsClosedOnDeletedUser(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice"}
	manager, _, source := newTestManager(t, user)
	ctx := context.Background()

	token, err := manager.Create(ctx, user.Identity())
	require.NoError(t, err)

	source.remove(user.ID)

	_, err = manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
}

func TestSessionManager_ResolveRejectsForgedToken(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice"}
	manager, store, _ := newTestManager(t, user)
	ctx := context.Background()

	// A token signed with another secret never reaches the store.
	forger := NewTokenCodec("attacker-secret", time.Hour)
	forged, err := forger.Encode(uuid.New().String(), user.ID)
	require.NoError(t, err)

	_, err = manager.Resolve(ctx, forged)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
	assert.Empty(t, store.sessions)
}

func TestSessionManager_TokenBindsSessionNotRecord(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice", Name: "Alice"}
	manager, _, source := newTestManager(t, user)
	ctx := context.Background()

	token, err := manager.Create(ctx, user.Identity())
	require.NoError(t, err)

	// Profile edits are visible on the next resolve because only the id
	// is serialized into the session.
	renamed := *user
	renamed.Name = "Alice B."
	source.set(&renamed)

	identity, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", identity.Name)
}
