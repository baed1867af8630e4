package service

import (
	"context"
	"errors"
	"fmt"

	"talenthub/internal/auth"
	apperrors "talenthub/internal/errors"
	"talenthub/internal/logging"
	"talenthub/internal/model"
	"talenthub/internal/repository"
)

// Sessions is the slice of the session manager the auth service uses.
type Sessions interface {
	Create(ctx context.Context, identity model.Identity) (string, error)
	Destroy(ctx context.Context, token string) error
}

// NewUserInput carries a registration submission. Password is plaintext
// here and is hashed before it reaches the repository.
type NewUserInput struct {
	Username    string
	Password    string
	Name        string
	Address     string
	ContactInfo model.ContactInfo
	AccountType model.AccountType
	About       string
	Experience  string
	Education   string
}

// AuthService handles registration, credential verification and the
// login/logout session lifecycle.
type AuthService interface {
	// Register creates a user record with a hashed credential.
	Register(ctx context.Context, input NewUserInput) (*model.User, error)

	// Authenticate verifies a username/password pair and returns the
	// identity on success. It is a pure decision: no session is created
	// and nothing is mutated. Failures are typed: ErrUnknownUser,
	// ErrInvalidPassword, ErrCorruptCredential, or a StoreError.
	Authenticate(ctx context.Context, username, password string) (model.Identity, error)

	// Login authenticates and, on success, issues a session token.
	Login(ctx context.Context, username, password string) (token string, identity model.Identity, err error)

	// Logout destroys the session named by token. Idempotent.
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	sessions Sessions
	log      logging.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, sessions Sessions, log logging.Logger) AuthService {
	return &authService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		log:      log,
	}
}

// Register hashes the credential and inserts the record. Username
// conflicts surface as ErrUsernameTaken from the repository's unique
// index; there is no racy existence pre-check.
func (s *authService) Register(ctx context.Context, input NewUserInput) (*model.User, error) {
	if !input.AccountType.Valid() {
		return nil, fmt.Errorf("unknown account type %q", input.AccountType)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: hashed,
		Name:         input.Name,
		Address:      input.Address,
		ContactInfo:  input.ContactInfo,
		AccountType:  input.AccountType,
		About:        input.About,
		Experience:   input.Experience,
		Education:    input.Education,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks the user up and verifies the password.
func (s *authService) Authenticate(ctx context.Context, username, password string) (model.Identity, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.Identity{}, apperrors.ErrUnknownUser
		}
		return model.Identity{}, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, apperrors.ErrCorruptCredential) {
			// Not a failed login: the stored hash is damaged and an
			// operator needs to know which record.
			s.log.Error(ctx, "stored credential is corrupt",
				"username", username, "user_id", user.ID.String())
		}
		return model.Identity{}, err
	}
	if !ok {
		return model.Identity{}, apperrors.ErrInvalidPassword
	}

	return user.Identity(), nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, model.Identity, error) {
	identity, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", model.Identity{}, err
	}

	token, err := s.sessions.Create(ctx, identity)
	if err != nil {
		return "", model.Identity{}, fmt.Errorf("create session: %w", err)
	}

	s.log.Info(ctx, "user logged in", "username", identity.Username, "user_id", identity.ID.String())
	return token, identity, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}
