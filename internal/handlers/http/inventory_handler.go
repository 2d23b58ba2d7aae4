package http

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"
	"stockroom/internal/infrastructure/middleware"
	"stockroom/pkg/errors"
	"stockroom/pkg/validation"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventory ports.InventoryService
}

func NewInventoryHandler(inventory ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// ListItems returns the full collection keyed by item id.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventory.List(c.Request.Context())
	if err != nil {
		c.Error(errors.NewInternalError("failed to list items").WithCause(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddItem creates an item from form fields with an optional image file.
func (h *InventoryHandler) AddItem(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	fields := ports.NewItem{
		Name:     c.PostForm("name"),
		Quantity: c.PostForm("quantity"),
		Price:    c.PostForm("price"),
		Category: c.PostForm("category"),
	}
	if err := validation.ValidateItemName(fields.Name); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}
	if err := validation.ValidateCategory(fields.Category); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	var image io.Reader
	var imageName string
	if fh, err := c.FormFile("image"); err == nil && fh != nil && fh.Filename != "" {
		f, err := fh.Open()
		if err == nil {
			defer f.Close()
			image = f
			imageName = fh.Filename
		}
	}

	id, err := h.inventory.Add(c.Request.Context(), fields, image, imageName, identity.UID)
	if err != nil {
		c.Error(errors.NewInternalError("failed to add item").WithCause(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Item added!", "id": id})
}

// DeleteItem removes an item permanently.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")
	if err := validation.ValidateItemID(id); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	err := h.inventory.Delete(c.Request.Context(), domain.ItemID(id))
	if stderrors.Is(err, domain.ErrItemNotFound) {
		c.Error(errors.NewNotFoundError("Item"))
		return
	}
	if err != nil {
		c.Error(errors.NewInternalError("failed to delete item").WithCause(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": fmt.Sprintf("Item %s deleted!", id)})
}

type UpdateQuantityRequest struct {
	Action string `json:"action"`
}

// UpdateQuantity applies an increase/decrease action to an item.
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	id := c.Param("id")
	if err := validation.ValidateItemID(id); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	var req UpdateQuantityRequest
	// A missing or malformed body falls through as an empty action, which
	// the service rejects as invalid.
	_ = c.ShouldBindJSON(&req)

	qty, err := h.inventory.AdjustQuantity(c.Request.Context(), domain.ItemID(id), domain.QuantityAction(req.Action))
	if stderrors.Is(err, domain.ErrItemNotFound) {
		c.Error(errors.NewNotFoundError("Item"))
		return
	}
	if stderrors.Is(err, domain.ErrInvalidAction) {
		c.Error(errors.NewInvalidActionError("Invalid action"))
		return
	}
	if err != nil {
		c.Error(errors.NewInternalError("failed to update quantity").WithCause(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Quantity updated", "new_quantity": qty})
}

// Dashboard returns the derived aggregate view for the current user.
func (h *InventoryHandler) Dashboard(c *gin.Context) {
	aggregates, err := h.inventory.Aggregates(c.Request.Context())
	if err != nil {
		c.Error(errors.NewInternalError("failed to compute aggregates").WithCause(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"aggregates": aggregates,
		"user":       middleware.CurrentIdentity(c),
	})
}

// Landing redirects authenticated users to the dashboard and greets everyone
// else.
func (h *InventoryHandler) Landing(c *gin.Context) {
	if middleware.CurrentIdentity(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": "stockroom", "status": "ok"})
}
