package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// itemHandler handles HTTP requests related to inventory items.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

// newItemHandler creates a new itemHandler.
func newItemHandler(is portssvc.ItemSvcFacade) *itemHandler {
	return &itemHandler{
		itemService: is,
	}
}

// registerItemRoutes registers routes related to items.
func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade) {
	h := newItemHandler(itemService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:itemID", h.getItem)
		items.POST("/:itemID/stock", h.restockItem)
	}
}

// createItem godoc
// @Summary Create a new item
// @Description Adds an item to the catalogue with its opening stock
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create item"
// @Security BearerAuth
// @Router /items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "JSON for CreateItem")
		return
	}

	ownerID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), ownerID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create item")
		return
	}

	logger.Info("Item created successfully", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getItem godoc
// @Summary Get an item by ID
// @Tags items
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed item ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve item"
// @Security BearerAuth
// @Router /items/{itemID} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	ownerID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	item, err := h.itemService.GetItemByID(c.Request.Context(), ownerID, itemID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve item")
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List items
// @Description Retrieves a page of items, newest first
// @Tags items
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListItemsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list items"
// @Security BearerAuth
// @Router /items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query params for ListItems")
		return
	}

	ownerID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	items, nextToken, err := h.itemService.ListItems(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, dto.ListItemsResponse{Items: dto.ToItemResponses(items), NextToken: nextToken})
}

// restockItem godoc
// @Summary Restock an item
// @Description Adds received goods to an item's stock and records a purchase entry
// @Tags items
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Param   restock body dto.RestockItemRequest true "Quantity received"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to restock item"
// @Security BearerAuth
// @Router /items/{itemID}/stock [post]
func (h *itemHandler) restockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	var req dto.RestockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "JSON for RestockItem")
		return
	}

	ownerID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	item, err := h.itemService.RestockItem(c.Request.Context(), ownerID, itemID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to restock item")
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}
