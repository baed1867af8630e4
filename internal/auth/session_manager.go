package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	apperrors "talenthub/internal/errors"
	"talenthub/internal/model"
)

// IdentitySource is the slice of the credential store the session
// manager needs: rehydrating an identity from its stored id.
type IdentitySource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// SessionManager maps opaque session tokens to identities. A session
// serializes only the user id; the full record is re-fetched on every
// resolution so role changes take effect without re-login.
type SessionManager struct {
	codec *TokenCodec
	store SessionStore
	users IdentitySource
}

// NewSessionManager wires the token codec, session store and user source.
func NewSessionManager(codec *TokenCodec, store SessionStore, users IdentitySource) *SessionManager {
	return &SessionManager{
		codec: codec,
		store: store,
		users: users,
	}
}

// Create issues a session bound to identity's id and returns the token
// handed to the client.
func (m *SessionManager) Create(ctx context.Context, identity model.Identity) (string, error) {
	sessionID := uuid.New().String()

	if err := m.store.Put(ctx, sessionID, identity.ID, m.codec.TTL()); err != nil {
		return "", err
	}

	token, err := m.codec.Encode(sessionID, identity.ID)
	if err != nil {
		// The orphaned record expires on its own, but don't leave it
		// live for the full TTL.
		_ = m.store.Delete(ctx, sessionID)
		return "", err
	}
	return token, nil
}

// Resolve maps a session token back to a live identity. It fails closed:
// a token that does not verify, names no session record, or points at a
// user that no longer exists all yield ErrInvalidSession.
func (m *SessionManager) Resolve(ctx context.Context, token string) (model.Identity, error) {
	claims, err := m.codec.Decode(token)
	if err != nil {
		return model.Identity{}, err
	}
	return m.ResolveClaims(ctx, claims)
}

// ResolveClaims resolves already-verified claims, for callers whose
// transport layer has done the signature check.
func (m *SessionManager) ResolveClaims(ctx context.Context, claims *SessionClaims) (model.Identity, error) {
	userID, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return model.Identity{}, err
	}

	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.Identity{}, apperrors.ErrInvalidSession
		}
		return model.Identity{}, err
	}

	return user.Identity(), nil
}

// Destroy ends the session named by token. It is idempotent and always
// succeeds on tokens that are already invalid.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := m.codec.Decode(token)
	if err != nil {
		// Nothing to destroy.
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}
