package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/services"
)

const publicBlogLimit = 50

type BlogHandler struct {
	blogs services.BlogService
	feed  services.FeedService
}

func NewBlogHandler(blogs services.BlogService, feed services.FeedService) *BlogHandler {
	return &BlogHandler{blogs: blogs, feed: feed}
}

// GET /api/blogs
func (h *BlogHandler) ListPublished(c *gin.Context) {
	posts, err := h.blogs.ListPublished(c.Request.Context(), publicBlogLimit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blogs": posts})
}

// GET /api/blogs/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.blogs.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blog": post})
}

// GET /api/feed.xml
func (h *BlogHandler) Feed(c *gin.Context) {
	rss, err := h.feed.RSS(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

// GET /api/admin/blogs
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.blogs.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blogs": posts})
}

// GET /api/admin/blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	post, err := h.blogs.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blog": post})
}

// POST /api/admin/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var in types.Blog
	if !bindJSON(c, &in) {
		return
	}
	post, err := h.blogs.Create(c.Request.Context(), &in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"blog": post})
}

// PUT /api/admin/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.Blog
	if !bindJSON(c, &in) {
		return
	}
	post, err := h.blogs.Update(c.Request.Context(), id, &in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blog": post})
}

// DELETE /api/admin/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.blogs.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
