package service

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"ecommerce-api/internal/entity"
	"ecommerce-api/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type UserService struct {
	repo repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetUsers retrieves all users.
func (s *UserService) GetUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting users")
		return nil, err
	}

	if users == nil {
		users = []*entity.User{}
	}
	return users, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}

	return user, nil
}

// CreateUser creates a new user.
func (s *UserService) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicateEmail
		}
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return createdUser, nil
}

// UpdateUser overwrites the mutable fields of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	_, err := s.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", user.ID)
		return nil, err
	}

	updatedUser, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicateEmail
		}
		logger.Error().Err(err).Msgf("Error updating user %d", user.ID)
		return nil, err
	}

	return updatedUser, nil
}

// DeleteUser removes a user and, through the repository transaction,
// their orders and order links.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	_, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return err
	}

	err = s.repo.DeleteUser(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return err
	}

	return nil
}
