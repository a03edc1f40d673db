package services

import (
	"context"
	"fmt"

	"github.com/cppla/aiblog/models"
)

// Follow makes followerID follow the author named username. Following twice is a no-op.
func (s *Service) Follow(ctx context.Context, followerID uint, username string) error {
	author, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return ErrSelfFollow
	}
	edge := models.Follow{UserID: followerID, AuthorID: author.ID}
	if err := s.db.WithContext(ctx).Where(&edge).FirstOrCreate(&edge).Error; err != nil {
		return fmt.Errorf("follow %q: %w", username, err)
	}
	return nil
}

// Unfollow removes the edge if present.
func (s *Service) Unfollow(ctx context.Context, followerID uint, username string) error {
	author, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, author.ID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether followerID follows authorID.
func (s *Service) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Count(&n).Error
	return n > 0, err
}
