package handler

import (
	"net/http"

	"salelog/internal/dto"
	"salelog/internal/service"

	"github.com/gin-gonic/gin"
)

type ItemsHandler struct{ svc service.ItemService }

func NewItemsHandler(svc service.ItemService) *ItemsHandler { return &ItemsHandler{svc: svc} }

// List godoc
// @Summary      List catalog items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.ItemResponse
// @Router       /v1/items [get]
func (h *ItemsHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary      Get a catalog item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     int  true "Item id"
// @Success      200  {object} dto.ItemResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/items/{id} [get]
func (h *ItemsHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	it, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Create godoc
// @Summary      Create a catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateItemRequest true "Item"
// @Success      201  {object} dto.ItemResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/items [post]
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	it, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// Update godoc
// @Summary      Update a catalog item
// @Description  Past sales keep the name and price they were recorded with.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     int                   true "Item id"
// @Param        body body     dto.UpdateItemRequest true "Fields to change"
// @Success      200  {object} dto.ItemResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/items/{id} [put]
func (h *ItemsHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	it, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Delete godoc
// @Summary      Delete a catalog item
// @Tags         items
// @Security     BearerAuth
// @Param        id   path     int  true "Item id"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/items/{id} [delete]
func (h *ItemsHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
