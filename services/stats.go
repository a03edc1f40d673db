package services

import (
	"context"
	"fmt"

	"github.com/cppla/aiblog/models"
)

// SiteStats are whole-site record counts.
type SiteStats struct {
	Users    int64 `json:"user_count"`
	Posts    int64 `json:"post_count"`
	Groups   int64 `json:"group_count"`
	Comments int64 `json:"comment_count"`
	Follows  int64 `json:"follow_count"`
}

// Stats counts every content table.
func (s *Service) Stats(ctx context.Context) (SiteStats, error) {
	var out SiteStats
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &out.Users},
		{&models.Post{}, &out.Posts},
		{&models.Group{}, &out.Groups},
		{&models.Comment{}, &out.Comments},
		{&models.Follow{}, &out.Follows},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return SiteStats{}, fmt.Errorf("count %T: %w", c.model, err)
		}
	}
	return out, nil
}
