// Package feed assembles ordered post sequences for the home timeline, group pages,
// author profiles and the personal follow feed.
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/cppla/aiblog/models"
)

// ErrNotFound reports a filter naming a group slug or username that does not exist.
var ErrNotFound = errors.New("not found")

// Kind selects which posts a Filter matches.
type Kind int

const (
	KindAll Kind = iota
	KindGroup
	KindAuthor
	KindFollowing
)

// Filter narrows a feed. Build one with All, ByGroup, ByAuthor or Following.
type Filter struct {
	Kind       Kind
	Slug       string
	Username   string
	FollowerID uint
}

func All() Filter                      { return Filter{Kind: KindAll} }
func ByGroup(slug string) Filter       { return Filter{Kind: KindGroup, Slug: slug} }
func ByAuthor(username string) Filter  { return Filter{Kind: KindAuthor, Username: username} }
func Following(followerID uint) Filter { return Filter{Kind: KindFollowing, FollowerID: followerID} }

// Feed is an ordered post sequence plus the group or author its filter resolved to.
type Feed struct {
	Posts  []models.Post
	Group  *models.Group
	Author *models.User
}

// Assembler reads feeds from the content store.
type Assembler struct {
	db *gorm.DB
}

func NewAssembler(db *gorm.DB) *Assembler {
	return &Assembler{db: db}
}

// Assemble returns every post matching f, newest first. Posts sharing a creation
// timestamp are ordered by id, highest first, so the order is total and stable.
func (a *Assembler) Assemble(ctx context.Context, f Filter) (Feed, error) {
	tx := a.db.WithContext(ctx)
	var out Feed

	query := tx.Model(&models.Post{})
	switch f.Kind {
	case KindAll:
	case KindGroup:
		var group models.Group
		if err := tx.Where("slug = ?", f.Slug).First(&group).Error; err != nil {
			return out, lookupErr("group", f.Slug, err)
		}
		out.Group = &group
		query = query.Where("group_id = ?", group.ID)
	case KindAuthor:
		var author models.User
		if err := tx.Where("username = ?", f.Username).First(&author).Error; err != nil {
			return out, lookupErr("author", f.Username, err)
		}
		out.Author = &author
		query = query.Where("author_id = ?", author.ID)
	case KindFollowing:
		var follows []models.Follow
		if err := tx.Where("user_id = ?", f.FollowerID).Find(&follows).Error; err != nil {
			return out, fmt.Errorf("load follows of %d: %w", f.FollowerID, err)
		}
		authorIDs := lo.Uniq(lo.Map(follows, func(item models.Follow, _ int) uint {
			return item.AuthorID
		}))
		if len(authorIDs) == 0 {
			out.Posts = []models.Post{}
			return out, nil
		}
		query = query.Where("author_id IN ?", authorIDs)
	default:
		return out, fmt.Errorf("unknown feed kind %d", f.Kind)
	}

	posts := []models.Post{}
	if err := query.
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error; err != nil {
		return out, fmt.Errorf("list posts: %w", err)
	}
	out.Posts = posts
	return out, nil
}

func lookupErr(what, key string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %q: %w", what, key, ErrNotFound)
	}
	return fmt.Errorf("load %s %q: %w", what, key, err)
}
