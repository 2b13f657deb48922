package service

import (
	"context"
	"errors"

	"timesketch/internal/models"
	"timesketch/internal/repository"
)

var ErrSketchNotFound = errors.New("sketch not found")

// Sketch permissions granted by GrantSketchAccess.
var sketchAccessPermissions = []string{"read", "write"}

// UserService implements the account operations behind tsctl.
type UserService struct {
	users    repository.UserRepo
	sketches repository.SketchRepo
}

func NewUserService(users repository.UserRepo, sketches repository.SketchRepo) *UserService {
	return &UserService{users: users, sketches: sketches}
}

// CreateOrUpdate creates the user with the given password, or resets the
// password when the username already exists. Reports whether a new account
// was created.
func (s *UserService) CreateOrUpdate(ctx context.Context, username, password string) (bool, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.users.UpdatePassword(ctx, existing.ID, hash)
	}

	if _, err := s.users.Create(ctx, username, hash); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) SetAdmin(ctx context.Context, username string, admin bool) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return s.users.SetAdmin(ctx, u.ID, admin)
}

func (s *UserService) SetActive(ctx context.Context, username string, active bool) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return s.users.SetActive(ctx, u.ID, active)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// GrantSketchAccess gives the user read and write access to the sketch.
func (s *UserService) GrantSketchAccess(ctx context.Context, username string, sketchID int) error {
	sketch, err := s.sketches.GetByID(ctx, sketchID)
	if err != nil {
		return err
	}
	if sketch == nil {
		return ErrSketchNotFound
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	for _, permission := range sketchAccessPermissions {
		if err := s.sketches.GrantPermission(ctx, sketch.ID, u.ID, permission); err != nil {
			return err
		}
	}
	return nil
}
