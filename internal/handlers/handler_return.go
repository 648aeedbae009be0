package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// returnHandler handles HTTP requests related to sales returns.
type returnHandler struct {
	returnService portssvc.ReturnSvcFacade
}

func newReturnHandler(rs portssvc.ReturnSvcFacade) *returnHandler {
	return &returnHandler{
		returnService: rs,
	}
}

// registerReturnRoutes registers routes related to returns.
func registerReturnRoutes(rg *gin.RouterGroup, returnService portssvc.ReturnSvcFacade, idempotent gin.HandlerFunc) {
	h := newReturnHandler(returnService)

	returns := rg.Group("/returns")
	{
		returns.POST("", idempotent, h.createReturn)
		returns.GET("", h.listReturns)
		returns.GET("/:returnID", h.getReturn)
		returns.DELETE("/:returnID", h.deleteReturn)
	}
}

// createReturn godoc
// @Summary Record a return
// @Description Validates quantities against what is left to return on the invoice, restocks undamaged goods
// @Description and credits the customer.
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Client-generated key; repeating it replays the first response"
// @Param   return body dto.CreateReturnRequest true "Return details"
// @Success 201 {object} dto.ReturnResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, e.g. quantity exceeds what remains"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 409 {object} dto.ErrorResponse "Idempotency key in use"
// @Failure 500 {object} dto.ErrorResponse "Failed to create return"
// @Security BearerAuth
// @Router /returns [post]
func (h *returnHandler) createReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "JSON for CreateReturn")
		return
	}

	ownerID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create return", slog.String("invoice_id", req.InvoiceID), slog.Int("lines", len(req.Lines)))

	ret, err := h.returnService.CreateReturn(c.Request.Context(), ownerID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create return")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReturnResponse(ret))
}

// getReturn godoc
// @Summary Get a return by ID
// @Tags returns
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Success 200 {object} dto.ReturnResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed return ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Return not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve return"
// @Security BearerAuth
// @Router /returns/{returnID} [get]
func (h *returnHandler) getReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	ret, err := h.returnService.GetReturnByID(c.Request.Context(), ownerID, c.Param("returnID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve return")
		return
	}

	c.JSON(http.StatusOK, dto.ToReturnResponse(ret))
}

// listReturns godoc
// @Summary List returns
// @Description Retrieves a page of returns, newest first. With invoiceID, every return of that invoice is listed.
// @Tags returns
// @Produce  json
// @Param   invoiceID query string false "Only returns against this invoice"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListReturnsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list returns"
// @Security BearerAuth
// @Router /returns [get]
func (h *returnHandler) listReturns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListReturnsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query params for ListReturns")
		return
	}

	ownerID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	returns, nextToken, err := h.returnService.ListReturns(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list returns")
		return
	}

	c.JSON(http.StatusOK, dto.ListReturnsResponse{Returns: dto.ToReturnResponses(returns), NextToken: nextToken})
}

// deleteReturn godoc
// @Summary Delete a return
// @Description Takes the restocked goods back out of stock, restores the customer's dues and the invoice's returned amount.
// @Tags returns
// @Param   returnID path string true "Return ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Restocked goods are no longer in stock"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Return not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete return"
// @Security BearerAuth
// @Router /returns/{returnID} [delete]
func (h *returnHandler) deleteReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	if err := h.returnService.DeleteReturn(c.Request.Context(), ownerID, c.Param("returnID"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete return")
		return
	}

	c.Status(http.StatusNoContent)
}
