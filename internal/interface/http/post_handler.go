package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/internal/application"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/paging"
	"github.com/oksasatya/jobboard/pkg/response"
)

type PostHandler struct {
	Posts  *application.PostService
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewPostHandler(posts *application.PostService, users *application.UserService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Users: users, Logger: logger}
}

type createPostRequest struct {
	Content  string   `json:"content"`
	PostType string   `json:"postType"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// List GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.Posts.List(c.Request.Context(), listing.ParsePostQuery(q), paging.Parse(q.Get("page"), q.Get("limit")))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"posts": page.Items, "pagination": page.Pagination})
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Posts.Create(c.Request.Context(), me, application.CreatePostInput{
		Content:  req.Content,
		PostType: req.PostType,
		Tags:     req.Tags,
		Image:    req.Image,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Created(c, "Post created successfully", gin.H{"post": p})
}

// Like POST /api/posts/:id/like toggles the caller's like.
func (h *PostHandler) Like(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	res, err := h.Posts.ToggleLike(c.Request.Context(), me, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	msg := "Post unliked"
	if res.Liked {
		msg = "Post liked"
	}
	response.OK(c, msg, gin.H{"likesCount": res.LikesCount, "liked": res.Liked})
}

// Comment POST /api/posts/:id/comment
func (h *PostHandler) Comment(c *gin.Context) {
	me, ok := caller(c, h.Users, h.Logger)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	cm, err := h.Posts.Comment(c.Request.Context(), me, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, "Comment added successfully", gin.H{"comment": cm})
}

// ByUser GET /api/posts/user/:userId
func (h *PostHandler) ByUser(c *gin.Context) {
	posts, err := h.Posts.ByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"posts": posts})
}
