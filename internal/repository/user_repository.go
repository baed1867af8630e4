package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "talenthub/internal/errors"
	"talenthub/internal/model"
)

// mysqlDuplicateEntry is the MySQL error number for a unique index violation.
const mysqlDuplicateEntry = 1062

// UserRepository defines persistence operations for user records. The
// caller supplies an already-hashed password in User.PasswordHash;
// plaintext never reaches this layer.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ListDirectory(ctx context.Context) ([]model.DirectoryEntry, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the record. Uniqueness is enforced by the username
// unique index, not a read-then-write check, so concurrent registrations
// of the same username cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntry(err) {
			return apperrors.ErrUsernameTaken
		}
		return apperrors.NewStoreError("create user", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateLookupError("find user by id", err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateLookupError("find user by username", err)
	}
	return &user, nil
}

// ListDirectory returns the admin directory projection. The column list
// is a whitelist; the password hash is excluded at the SQL level.
func (r *userRepository) ListDirectory(ctx context.Context) ([]model.DirectoryEntry, error) {
	var entries []model.DirectoryEntry
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("name", "username", "address",
			"contact_email", "contact_phone", "contact_website1", "contact_website2",
			"account_type").
		Order("username").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewStoreError("list directory", err)
	}
	return entries, nil
}

// translateLookupError maps a missing row to the domain not-found error
// and everything else to a StoreError.
func translateLookupError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.NewStoreError(op, err)
}

// isDuplicateEntry reports whether err is a MySQL unique index violation.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
