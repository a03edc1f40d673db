package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/aiblog/config"
	"github.com/cppla/aiblog/models"
)

type fixture struct {
	db    *gorm.DB
	leo   models.User
	max   models.User
	cats  models.Group
	dogs  models.Group
	start time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := config.Open(config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		LogLevel:    "silent",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:    conn,
		leo:   models.User{Username: "leo"},
		max:   models.User{Username: "max"},
		cats:  models.Group{Title: "Cats", Slug: "cats"},
		dogs:  models.Group{Title: "Dogs", Slug: "dogs"},
		start: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&f.leo).Error)
	require.NoError(t, conn.Create(&f.max).Error)
	require.NoError(t, conn.Create(&f.cats).Error)
	require.NoError(t, conn.Create(&f.dogs).Error)
	return f
}

func (f *fixture) post(t *testing.T, author models.User, group *models.Group, text string, offset time.Duration) models.Post {
	t.Helper()
	p := models.Post{Text: text, AuthorID: author.ID, CreatedAt: f.start.Add(offset)}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func texts(feed Feed) []string {
	return lo.Map(feed.Posts, func(p models.Post, _ int) string { return p.Text })
}

func TestAllNewestFirstWithStableTies(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.leo, nil, "oldest", 0)
	f.post(t, f.max, &f.cats, "tie-a", time.Minute)
	f.post(t, f.leo, nil, "tie-b", time.Minute)
	f.post(t, f.max, nil, "newest", time.Hour)

	a := NewAssembler(f.db)
	got, err := a.Assemble(context.Background(), All())
	require.NoError(t, err)
	require.Equal(t, []string{"newest", "tie-b", "tie-a", "oldest"}, texts(got))
	require.Nil(t, got.Group)
	require.Nil(t, got.Author)
	require.Equal(t, "max", got.Posts[0].Author.Username)
	require.Equal(t, "cats", got.Posts[2].Group.Slug)

	again, err := a.Assemble(context.Background(), All())
	require.NoError(t, err)
	require.Equal(t, texts(got), texts(again))
}

func TestEmptyStore(t *testing.T) {
	f := newFixture(t)
	got, err := NewAssembler(f.db).Assemble(context.Background(), All())
	require.NoError(t, err)
	require.NotNil(t, got.Posts)
	require.Empty(t, got.Posts)
}

func TestByGroup(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.leo, &f.cats, "cat 1", 0)
	f.post(t, f.max, &f.dogs, "dog 1", time.Second)
	f.post(t, f.max, &f.cats, "cat 2", 2*time.Second)

	a := NewAssembler(f.db)
	got, err := a.Assemble(context.Background(), ByGroup("cats"))
	require.NoError(t, err)
	require.Equal(t, []string{"cat 2", "cat 1"}, texts(got))
	require.NotNil(t, got.Group)
	require.Equal(t, "Cats", got.Group.Title)

	_, err = a.Assemble(context.Background(), ByGroup("birds"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestByAuthor(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.leo, nil, "leo 1", 0)
	f.post(t, f.max, nil, "max 1", time.Second)
	f.post(t, f.leo, &f.cats, "leo 2", 2*time.Second)

	a := NewAssembler(f.db)
	got, err := a.Assemble(context.Background(), ByAuthor("leo"))
	require.NoError(t, err)
	require.Equal(t, []string{"leo 2", "leo 1"}, texts(got))
	require.Equal(t, f.leo.ID, got.Author.ID)

	_, err = a.Assemble(context.Background(), ByAuthor("nobody"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUngroupedPostsStayInAllAndAuthor(t *testing.T) {
	f := newFixture(t)
	p := f.post(t, f.leo, &f.cats, "orphan", 0)
	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", p.ID).Update("group_id", nil).Error)

	a := NewAssembler(f.db)
	all, err := a.Assemble(context.Background(), All())
	require.NoError(t, err)
	require.Equal(t, []string{"orphan"}, texts(all))
	require.Nil(t, all.Posts[0].Group)

	byAuthor, err := a.Assemble(context.Background(), ByAuthor("leo"))
	require.NoError(t, err)
	require.Equal(t, []string{"orphan"}, texts(byAuthor))

	byGroup, err := a.Assemble(context.Background(), ByGroup("cats"))
	require.NoError(t, err)
	require.Empty(t, byGroup.Posts)
}

func TestFollowing(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.leo, nil, "leo 1", 0)
	f.post(t, f.max, nil, "max 1", time.Second)

	a := NewAssembler(f.db)
	got, err := a.Assemble(context.Background(), Following(f.leo.ID))
	require.NoError(t, err)
	require.Empty(t, got.Posts)

	require.NoError(t, f.db.Create(&models.Follow{UserID: f.leo.ID, AuthorID: f.max.ID}).Error)
	got, err = a.Assemble(context.Background(), Following(f.leo.ID))
	require.NoError(t, err)
	require.Equal(t, []string{"max 1"}, texts(got))
}
