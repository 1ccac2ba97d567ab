package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type NewsHandler struct {
	service ports.NewsService
}

func NewNewsHandler(service ports.NewsService) *NewsHandler {
	return &NewsHandler{service: service}
}

// List handles GET /api/news. published=false lists drafts as well and
// needs a session.
//
// @Summary      List news
// @Tags         news
// @Produce      json
// @Param        published  query     bool  false  "false lists every article (session required)"
// @Success      200        {object}  map[string]any
// @Failure      401        {object}  map[string]any
// @Router       /api/news [get]
func (h *NewsHandler) List(c echo.Context) error {
	publishedOnly := c.QueryParam("published") != "false"
	if !publishedOnly {
		if _, err := requireSession(c); err != nil {
			return err
		}
	}
	items, err := h.service.List(c.Request().Context(), publishedOnly)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "news", items)
}

// Featured handles GET /api/news/featured.
//
// @Summary      Featured news
// @Tags         news
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/news/featured [get]
func (h *NewsHandler) Featured(c echo.Context) error {
	items, err := h.service.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "news", items)
}

// Get handles GET /api/news/:id.
//
// @Summary      Get an article by id
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "News id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	n, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "news", n)
}

// GetBySlug handles GET /api/news/slug/:slug.
//
// @Summary      Get an article by slug
// @Tags         news
// @Produce      json
// @Param        slug  path      string  true  "News slug"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/news/slug/{slug} [get]
func (h *NewsHandler) GetBySlug(c echo.Context) error {
	n, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "news", n)
}

// Create handles POST /api/news.
//
// @Summary      Create an article
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        body  body      newsRequest  true  "Article"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /api/news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req newsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	n, err := h.service.Create(c.Request().Context(), s, req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "news", n)
}

// Update handles PUT /api/news/:id.
//
// @Summary      Replace an article
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "News id"
// @Param        body  body      newsRequest  true  "Article"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/news/{id} [put]
func (h *NewsHandler) Update(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req newsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	n, err := h.service.Update(c.Request().Context(), s, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "news", n)
}

// SetFeatured handles PATCH /api/news/:id. Only the featured flag may be
// patched.
//
// @Summary      Feature or unfeature an article
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "News id"
// @Param        body  body      newsFeaturedRequest  true  "featured flag"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/news/{id} [patch]
func (h *NewsHandler) SetFeatured(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req newsFeaturedRequest
	if err := c.Bind(&req); err != nil || req.Featured == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := h.service.SetFeatured(c.Request().Context(), s, c.Param("id"), *req.Featured); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}

// Publish handles POST /api/news/:id/publish.
//
// @Summary      Publish an article
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "News id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/news/{id}/publish [post]
func (h *NewsHandler) Publish(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Publish(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}

// Unpublish handles POST /api/news/:id/unpublish.
//
// @Summary      Unpublish an article
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "News id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/news/{id}/unpublish [post]
func (h *NewsHandler) Unpublish(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Unpublish(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}

// Delete handles DELETE /api/news/:id.
//
// @Summary      Delete an article
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "News id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}
