package service

import (
	"context"
	"errors"

	"timesketch/internal/models"
	"timesketch/internal/repository"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrAlreadyMember = errors.New("user is already a member of the group")
	ErrNotAMember    = errors.New("user is not a member of the group")
)

type GroupService struct {
	groups repository.GroupRepo
	users  repository.UserRepo
}

func NewGroupService(groups repository.GroupRepo, users repository.UserRepo) *GroupService {
	return &GroupService{groups: groups, users: users}
}

// Create adds the group if it does not exist yet.
func (s *GroupService) Create(ctx context.Context, name string) error {
	existing, err := s.groups.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.groups.Create(ctx, name)
	return err
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groups.List(ctx)
}

func (s *GroupService) AddMember(ctx context.Context, groupName, username string) error {
	group, user, err := s.resolve(ctx, groupName, username)
	if err != nil {
		return err
	}
	added, err := s.groups.AddMember(ctx, group.ID, user.ID)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadyMember
	}
	return nil
}

func (s *GroupService) RemoveMember(ctx context.Context, groupName, username string) error {
	group, user, err := s.resolve(ctx, groupName, username)
	if err != nil {
		return err
	}
	removed, err := s.groups.RemoveMember(ctx, group.ID, user.ID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotAMember
	}
	return nil
}

func (s *GroupService) Members(ctx context.Context, groupName string) ([]models.User, error) {
	group, err := s.groups.GetByName(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return s.groups.Members(ctx, group.ID)
}

func (s *GroupService) resolve(ctx context.Context, groupName, username string) (*models.Group, *models.User, error) {
	group, err := s.groups.GetByName(ctx, groupName)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	return group, user, nil
}
