package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/aiblog/models"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]{1,64}$`)

// ListGroups returns all groups ordered by title.
func (s *Service) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	err := s.db.WithContext(ctx).Order("title ASC").Order("id ASC").Find(&groups).Error
	return groups, err
}

// CreateGroup adds a group; the slug must be unique.
func (s *Service) CreateGroup(ctx context.Context, title, slug, description string) (models.Group, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)
	if title == "" || len([]rune(title)) > 200 || !slugPattern.MatchString(slug) || len([]rune(description)) > 500 {
		return models.Group{}, ErrInvalid
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return models.Group{}, err
	}
	if n > 0 {
		return models.Group{}, fmt.Errorf("group %q: %w", slug, ErrConflict)
	}

	group := models.Group{Title: title, Slug: slug, Description: strings.TrimSpace(description)}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return models.Group{}, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

// DeleteGroup removes a group while keeping its posts, which become ungrouped.
func (s *Service) DeleteGroup(ctx context.Context, slug string) error {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", group.ID).Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("detach posts from group %q: %w", slug, err)
		}
		return tx.Delete(&models.Group{}, group.ID).Error
	})
}
