package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printologia/printshop/internal/adapters/http/dto"
	"github.com/printologia/printshop/internal/app"
)

// BlogHandler serves the public blog and the admin post endpoints.
type BlogHandler struct {
	service *app.BlogService
}

// NewBlogHandler creates a blog handler.
func NewBlogHandler(service *app.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// ListPublishedPosts handles GET /api/v1/blog/posts.
//
// @Summary List published posts
// @Tags blog
// @Produce json
// @Param search query string false "Matches title or content"
// @Param limit query int false "Page size (1-100)" default(10)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {object} dto.Page[dto.PostResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/blog/posts [get]
func (h *BlogHandler) ListPublishedPosts(c *gin.Context) {
	var q dto.PostListQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := h.service.ListPublishedPosts(c.Request.Context(), q.Filter())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostPage(page))
}

// GetPublishedPost handles GET /api/v1/blog/posts/:slug.
//
// @Summary Get a published post
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/blog/posts/{slug} [get]
func (h *BlogHandler) GetPublishedPost(c *gin.Context) {
	post, err := h.service.GetPublishedPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(*post))
}

// ListPosts handles GET /api/v1/admin/posts. Drafts are included unless
// published is given.
//
// @Summary List posts
// @Tags admin
// @Produce json
// @Param search query string false "Matches title or content"
// @Param published query bool false "Filter by state"
// @Param limit query int false "Page size (1-100)" default(10)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {object} dto.Page[dto.PostResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/v1/admin/posts [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	var q dto.PostListQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := h.service.ListPosts(c.Request.Context(), q.Filter())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostPage(page))
}

// CreatePost handles POST /api/v1/admin/posts.
//
// @Summary Create a post
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/admin/posts [post]
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), req.Post())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+post.ID)
	c.JSON(http.StatusCreated, dto.NewPostResponse(*post))
}

// GetPost handles GET /api/v1/admin/posts/:id.
//
// @Summary Get a post
// @Tags admin
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/admin/posts/{id} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	var p dto.PostIDParam
	if err := dto.BindURIAndValidate(c, &p); err != nil {
		dto.HandleError(c, err)
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), p.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(*post))
}

// UpdatePost handles PUT and PATCH /api/v1/admin/posts/:id. Both apply
// the fields present in the body.
//
// @Summary Update a post
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Fields to change"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/admin/posts/{id} [patch]
// @Router /api/v1/admin/posts/{id} [put]
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	var p dto.PostIDParam
	if err := dto.BindURIAndValidate(c, &p); err != nil {
		dto.HandleError(c, err)
		return
	}

	var req dto.UpdatePostRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), p.ID, req.Patch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(*post))
}

// DeletePost handles DELETE /api/v1/admin/posts/:id.
//
// @Summary Delete a post
// @Tags admin
// @Param id path string true "Post ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/admin/posts/{id} [delete]
func (h *BlogHandler) DeletePost(c *gin.Context) {
	var p dto.PostIDParam
	if err := dto.BindURIAndValidate(c, &p); err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), p.ID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterPublicRoutes registers the blog under rg.
func (h *BlogHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	blog := rg.Group("/blog")
	blog.GET("/posts", h.ListPublishedPosts)
	blog.GET("/posts/:slug", h.GetPublishedPost)
}

// RegisterAdminRoutes registers post management under rg, which the caller
// has already protected.
func (h *BlogHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.GET("", h.ListPosts)
	posts.POST("", h.CreatePost)
	posts.GET("/:id", h.GetPost)
	posts.PUT("/:id", h.UpdatePost)
	posts.PATCH("/:id", h.UpdatePost)
	posts.DELETE("/:id", h.DeletePost)
}
