package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/utils"
)

// PostController manages single posts and their comments.
type PostController struct {
	svc       *services.Service
	mediaRoot string
}

// NewPostController creates a new PostController instance.
func NewPostController(svc *services.Service, mediaRoot string) *PostController {
	return &PostController{svc: svc, mediaRoot: mediaRoot}
}

// GetPost returns a single post with its comments and the author's post count.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}

	post, err := p.svc.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		respondServiceError(ctx, err, 40403, "post not found")
		return
	}
	count, err := p.svc.CountPostsByAuthor(ctx.Request.Context(), post.AuthorID)
	if err != nil {
		respondServiceError(ctx, err, 40403, "post not found")
		return
	}

	utils.Success(ctx, gin.H{"post": post, "author_post_count": count})
}

// CreatePost publishes a post. Accepts JSON, or multipart form data when an image is attached.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	in, ok := p.bindPostInput(ctx)
	if !ok {
		return
	}

	post, err := p.svc.CreatePost(ctx.Request.Context(), userID, in)
	if err != nil {
		p.discardImage(in.Image)
		respondServiceError(ctx, err, 40401, "group not found")
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"post": post})
}

// UpdatePost lets the author edit text, group and image of a post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	in, ok := p.bindPostInput(ctx)
	if !ok {
		return
	}

	post, err := p.svc.UpdatePost(ctx.Request.Context(), postID, userID, in)
	if err != nil {
		p.discardImage(in.Image)
		respondServiceError(ctx, err, 40403, "post or group not found")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post with its comments. Allowed for the author and admins.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	if err := p.svc.DeletePost(ctx.Request.Context(), postID, userID, isAdmin(ctx)); err != nil {
		respondServiceError(ctx, err, 40403, "post not found")
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// CreateComment adds a comment to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := ctx.ShouldBind(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	comment, err := p.svc.AddComment(ctx.Request.Context(), postID, userID, req.Text)
	if err != nil {
		respondServiceError(ctx, err, 40403, "post not found")
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"comment": comment})
}

// DeleteComment removes a comment. Allowed for the comment author and admins.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40404, "comment not found")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40114, "unauthorized")
		return
	}

	if err := p.svc.DeleteComment(ctx.Request.Context(), commentID, userID, isAdmin(ctx)); err != nil {
		respondServiceError(ctx, err, 40404, "comment not found")
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

// bindPostInput reads text, group_id and an optional image. It writes the error
// response itself and reports false when the request is malformed.
func (p *PostController) bindPostInput(ctx *gin.Context) (services.PostInput, bool) {
	var in services.PostInput

	if !strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		var req struct {
			Text    string `json:"text"`
			GroupID *uint  `json:"group_id"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
			return in, false
		}
		in.Text = req.Text
		in.GroupID = req.GroupID
		return in, true
	}

	in.Text = ctx.PostForm("text")
	if raw := strings.TrimSpace(ctx.PostForm("group_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.Error(ctx, http.StatusBadRequest, 40022, "invalid group_id")
			return in, false
		}
		gid := uint(id)
		in.GroupID = &gid
	}

	header, err := ctx.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, true
	}
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid image upload")
		return in, false
	}
	if utils.CleanText(in.Text) == "" {
		// reject before writing the image to disk
		utils.Error(ctx, http.StatusBadRequest, 40021, "text cannot be empty")
		return in, false
	}
	path, err := utils.SavePostImage(p.mediaRoot, header)
	if err != nil {
		if errors.Is(err, utils.ErrUnsupportedImage) {
			utils.Error(ctx, http.StatusBadRequest, 40024, "unsupported image")
			return in, false
		}
		respondServiceError(ctx, err, 40400, "not found")
		return in, false
	}
	in.Image = path
	return in, true
}

// discardImage removes an image saved for a request whose write was rejected.
func (p *PostController) discardImage(rel string) {
	if err := utils.RemovePostImage(p.mediaRoot, rel); err != nil {
		utils.Logger.Warn("remove unused post image", zap.String("image", rel), zap.Error(err))
	}
}
