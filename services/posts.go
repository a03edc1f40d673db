package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/utils"
)

// PostInput carries the editable fields of a post. An empty Image keeps the current one.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   string
}

// CreatePost publishes a post by authorID. The creation timestamp is set here, once.
func (s *Service) CreatePost(ctx context.Context, authorID uint, in PostInput) (models.Post, error) {
	text := utils.CleanText(in.Text)
	if text == "" {
		return models.Post{}, ErrEmptyText
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  in.GroupID,
		Image:    in.Image,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	return s.GetPost(ctx, post.ID)
}

// UpdatePost lets the author change text, group and image. created_at is never written.
func (s *Service) UpdatePost(ctx context.Context, postID, editorID uint, in PostInput) (models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		return models.Post{}, notFound(err)
	}
	if post.AuthorID != editorID {
		return models.Post{}, ErrForbidden
	}
	text := utils.CleanText(in.Text)
	if text == "" {
		return models.Post{}, ErrEmptyText
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return models.Post{}, err
	}

	fields := map[string]any{"text": text, "group_id": in.GroupID}
	if in.Image != "" {
		fields["image"] = in.Image
	}
	if err := s.db.WithContext(ctx).Model(&post).Updates(fields).Error; err != nil {
		return models.Post{}, fmt.Errorf("update post %d: %w", postID, err)
	}
	return s.GetPost(ctx, postID)
}

// DeletePost removes a post and its comments. Only the author or an admin may do so.
func (s *Service) DeletePost(ctx context.Context, postID, actorID uint, admin bool) error {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		return notFound(err)
	}
	if post.AuthorID != actorID && !admin {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of post %d: %w", post.ID, err)
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
}

// GetPost loads a post with author, group and comments (oldest first).
func (s *Service) GetPost(ctx context.Context, postID uint) (models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Comments.Author").
		First(&post, postID).Error
	if err != nil {
		return models.Post{}, notFound(err)
	}
	return post, nil
}

// CountPostsByAuthor returns how many posts authorID has published.
func (s *Service) CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (s *Service) checkGroup(ctx context.Context, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", *groupID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("group %d: %w", *groupID, ErrNotFound)
	}
	return nil
}
