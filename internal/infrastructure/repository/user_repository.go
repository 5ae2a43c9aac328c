package repository

import (
	"context"
	"errors"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	domainRepo "github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateByName resolves a user by its unique name, creating it on
// first use. Concurrent first creations race on the unique constraint; the
// loser treats the violation as "already exists" and re-fetches.
func (r *userRepository) FindOrCreateByName(ctx context.Context, name string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "name = ?", name).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = entity.User{Name: name}
	err = r.db.WithContext(ctx).Create(&user).Error
	if err == nil {
		return &user, nil
	}

	if isUniqueViolation(err) {
		var existing entity.User
		if ferr := r.db.WithContext(ctx).First(&existing, "name = ?", name).Error; ferr != nil {
			return nil, ferr
		}
		return &existing, nil
	}
	return nil, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
