package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/utils"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

// Register creates a local account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return models.User{}, ErrInvalid
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return models.User{}, err
	}
	if n > 0 {
		return models.User{}, fmt.Errorf("user %q: %w", username, ErrConflict)
	}

	user := models.User{Username: username, Email: strings.TrimSpace(email), PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user when username and password match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, ErrForbidden
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrForbidden
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes an account with everything that references it.
func (s *Service) DeleteUser(ctx context.Context, username string) error {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", user.ID)
		if err := tx.Where("post_id IN (?) OR author_id = ?", ownPosts, user.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("delete posts: %w", err)
		}
		if err := tx.Where("user_id = ? OR author_id = ?", user.ID, user.ID).Delete(&models.Follow{}).Error; err != nil {
			return fmt.Errorf("delete follows: %w", err)
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
}
