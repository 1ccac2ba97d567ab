package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// SubItemHandler serves one nested collection under
// /api/{owner}/:id/{kind}. The owner id is always the :id path parameter.
type SubItemHandler[T domain.SubItem] struct {
	service ports.SubItemService[T]
}

func NewSubItemHandler[T domain.SubItem](service ports.SubItemService[T]) *SubItemHandler[T] {
	return &SubItemHandler[T]{service: service}
}

type replaceItemsRequest[T domain.SubItem] struct {
	Items []T `json:"items"`
}

// Kind describes the collection served by h.
func (h *SubItemHandler[T]) Kind() domain.ItemKind { return h.service.Kind() }

// Mount registers the collection routes on g, which must already be rooted
// at the owner path. Writes go through auth.
func (h *SubItemHandler[T]) Mount(g *echo.Group, auth echo.MiddlewareFunc) {
	base := "/:id/" + h.service.Kind().Path
	g.GET(base, h.List)
	g.POST(base, h.Add, auth)
	g.PUT(base, h.Replace, auth)
	g.PUT(base+"/:itemId", h.Update, auth)
	g.DELETE(base+"/:itemId", h.Delete, auth)
}

// List handles GET /api/{owner}/:id/{kind}.
//
// @Summary      List the items of a nested collection
// @Tags         sub-collections
// @Produce      json
// @Param        id   path      string  true  "Owner id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/profiles/{id}/projects [get]
func (h *SubItemHandler[T]) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "items", items)
}

// Add handles POST /api/{owner}/:id/{kind}.
//
// @Summary      Add an item to a nested collection
// @Tags         sub-collections
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Owner id"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/profiles/{id}/projects [post]
func (h *SubItemHandler[T]) Add(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var item T
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	stored, err := h.service.Add(c.Request().Context(), s, c.Param("id"), item)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "item", stored)
}

// Update handles PUT /api/{owner}/:id/{kind}/:itemId.
//
// @Summary      Update an item of a nested collection
// @Tags         sub-collections
// @Accept       json
// @Produce      json
// @Param        id      path      string  true  "Owner id"
// @Param        itemId  path      string  true  "Item id"
// @Success      200     {object}  map[string]any
// @Failure      400     {object}  map[string]any
// @Failure      404     {object}  map[string]any
// @Router       /api/profiles/{id}/projects/{itemId} [put]
func (h *SubItemHandler[T]) Update(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var item T
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	stored, err := h.service.Update(c.Request().Context(), s, c.Param("id"), c.Param("itemId"), item)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "item", stored)
}

// Delete handles DELETE /api/{owner}/:id/{kind}/:itemId.
//
// @Summary      Remove an item from a nested collection
// @Tags         sub-collections
// @Produce      json
// @Param        id      path      string  true  "Owner id"
// @Param        itemId  path      string  true  "Item id"
// @Success      200     {object}  map[string]any
// @Failure      404     {object}  map[string]any
// @Router       /api/profiles/{id}/projects/{itemId} [delete]
func (h *SubItemHandler[T]) Delete(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id"), c.Param("itemId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", nil)
}

// Replace handles PUT /api/{owner}/:id/{kind}: the whole list is swapped
// for the items in the body, numbered in the order given.
//
// @Summary      Replace a nested collection
// @Tags         sub-collections
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Owner id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/profiles/{id}/projects [put]
func (h *SubItemHandler[T]) Replace(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	var req replaceItemsRequest[T]
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	items, err := h.service.Replace(c.Request().Context(), s, c.Param("id"), req.Items)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "items", items)
}
