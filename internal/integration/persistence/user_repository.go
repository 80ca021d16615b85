package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(store *Store) adapter.UserRepository {
	return &userRepository{
		store: store,
	}
}

// Create creates a new user in the database.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	if err := db.Create(model.FromEntity(user)).Error; err != nil {
		return classify(err)
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByGoogleID retrieves a user by the linked Google account ID.
func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var userModel model.UserModel
	result := db.Where(query, arg).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, classify(result.Error)
	}
	return userModel.ToEntity(), nil
}

// Update updates an existing user in the database.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	if err := db.Save(model.FromEntity(user)).Error; err != nil {
		return classify(err)
	}
	return nil
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var count int64
	result := db.Model(&model.UserModel{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return count > 0, nil
}
