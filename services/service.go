// Package services implements blog writes and single-record reads on top of gorm.
//
// The schema is migrated without foreign key constraints, so the referential actions the
// feeds rely on are applied here inside transactions:
//   - deleting a post deletes its comments
//   - deleting a group nulls group_id on its posts
//   - deleting a user deletes their posts (and those posts' comments), comments and follows
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cppla/aiblog/feed"
)

var (
	ErrNotFound   = feed.ErrNotFound
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("already exists")
	ErrEmptyText  = errors.New("text cannot be empty")
	ErrSelfFollow = errors.New("cannot follow yourself")
	ErrInvalid    = errors.New("invalid input")
)

// Service bundles content operations over one database handle.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
