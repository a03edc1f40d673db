package services

import (
	"context"
	"fmt"

	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/utils"
)

// AddComment attaches a comment by authorID to an existing post.
func (s *Service) AddComment(ctx context.Context, postID, authorID uint, text string) (models.Comment, error) {
	text = utils.CleanText(text)
	if text == "" {
		return models.Comment{}, ErrEmptyText
	}
	var post models.Post
	if err := s.db.WithContext(ctx).Select("id").First(&post, postID).Error; err != nil {
		return models.Comment{}, notFound(err)
	}

	comment := models.Comment{PostID: post.ID, AuthorID: authorID, Text: text}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return models.Comment{}, fmt.Errorf("reload comment %d: %w", comment.ID, err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only its author or an admin may do so.
func (s *Service) DeleteComment(ctx context.Context, commentID, actorID uint, admin bool) error {
	var c models.Comment
	if err := s.db.WithContext(ctx).First(&c, commentID).Error; err != nil {
		return notFound(err)
	}
	if c.AuthorID != actorID && !admin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.Comment{}, c.ID).Error
}
