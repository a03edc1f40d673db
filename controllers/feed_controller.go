package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/aiblog/feed"
	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/pagination"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/timeline"
	"github.com/cppla/aiblog/utils"
)

// FeedController serves the paginated post listings: home timeline, group pages,
// author profiles and the personal follow feed.
type FeedController struct {
	assembler *feed.Assembler
	svc       *services.Service
	timeline  *timeline.Timeline
	pageSize  int
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(assembler *feed.Assembler, svc *services.Service, tl *timeline.Timeline, pageSize int) *FeedController {
	return &FeedController{assembler: assembler, svc: svc, timeline: tl, pageSize: pageSize}
}

// Index returns one page of the home timeline. Anonymous responses come from the
// timeline cache and may lag behind recent writes by up to the cache TTL.
func (f *FeedController) Index(ctx *gin.Context) {
	page := pagination.ParsePageNumber(ctx.Query("page"))
	_, authenticated := getUserID(ctx)

	body, hit, err := f.timeline.Serve(ctx.Request.Context(), timeline.Request{
		Page:      page,
		Anonymous: !authenticated,
	}, f.renderIndex)
	if err != nil {
		respondServiceError(ctx, err, 40400, "not found")
		return
	}
	if hit {
		ctx.Header("X-Cache", "HIT")
	} else {
		ctx.Header("X-Cache", "MISS")
	}
	utils.RawJSON(ctx, body)
}

func (f *FeedController) renderIndex(ctx context.Context, page int) (timeline.Rendered, error) {
	fd, err := f.assembler.Assemble(ctx, feed.All())
	if err != nil {
		return timeline.Rendered{}, err
	}
	pg := pagination.Paginate(fd.Posts, page, f.pageSize)
	body, err := utils.RenderSuccess(gin.H{"posts": pg})
	if err != nil {
		return timeline.Rendered{}, err
	}
	return timeline.Rendered{Body: body, Page: pg.Number}, nil
}

// GroupPosts lists the posts published into the group named by slug.
func (f *FeedController) GroupPosts(ctx *gin.Context) {
	fd, err := f.assembler.Assemble(ctx.Request.Context(), feed.ByGroup(ctx.Param("slug")))
	if err != nil {
		respondServiceError(ctx, err, 40401, "group not found")
		return
	}
	utils.Success(ctx, gin.H{
		"group": fd.Group,
		"posts": f.page(ctx, fd.Posts),
	})
}

// Profile lists an author's posts plus whether the viewer follows them.
func (f *FeedController) Profile(ctx *gin.Context) {
	fd, err := f.assembler.Assemble(ctx.Request.Context(), feed.ByAuthor(ctx.Param("username")))
	if err != nil {
		respondServiceError(ctx, err, 40402, "user not found")
		return
	}

	following := false
	if viewerID, ok := getUserID(ctx); ok && viewerID != fd.Author.ID {
		following, err = f.svc.IsFollowing(ctx.Request.Context(), viewerID, fd.Author.ID)
		if err != nil {
			respondServiceError(ctx, err, 40402, "user not found")
			return
		}
	}

	utils.Success(ctx, gin.H{
		"author":     fd.Author,
		"post_count": len(fd.Posts),
		"following":  following,
		"posts":      f.page(ctx, fd.Posts),
	})
}

// FollowIndex lists posts by the authors the current user follows. Never cached.
func (f *FeedController) FollowIndex(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	fd, err := f.assembler.Assemble(ctx.Request.Context(), feed.Following(userID))
	if err != nil {
		respondServiceError(ctx, err, 40402, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"posts": f.page(ctx, fd.Posts)})
}

func (f *FeedController) page(ctx *gin.Context, posts []models.Post) pagination.Page[models.Post] {
	return pagination.Paginate(posts, pagination.ParsePageNumber(ctx.Query("page")), f.pageSize)
}
