package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/centraldesk/treasury_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests related to treasury transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
	}
}

// registerTransferRoutes registers transfer routes nested under a company.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.initializeTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:transfer_id", h.getTransfer)
		transfers.PUT("/:transfer_id", h.updateTransfer)
		transfers.POST("/:transfer_id/validate", h.validateTransfer)
	}
}

// respondTransferError maps service errors to HTTP statuses shared by the
// transfer endpoints. Returns false when the error was not recognized, so the
// caller logs it and responds 500.
func respondTransferError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConfiguration):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions for this company"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transfer not found"})
	default:
		return false
	}
	return true
}

// initializeTransfer godoc
// @Summary Initialize a transfer request
// @Description Creates a draft transfer with its source journal auto-selected from the caller's operating units and the system amount set to the posted balance of that journal's main account.
// @Tags transfers
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "No eligible source journal or missing account configuration"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/transfers [post]
func (h *transferHandler) initializeTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("user_id", userID))

	transfer, err := h.transferService.InitializeTransfer(c.Request.Context(), companyID, userID)
	if err != nil {
		if !respondTransferError(c, err) {
			logger.Error("Failed to initialize transfer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize transfer"})
		}
		return
	}

	logger.Info("Transfer initialized", slog.String("transfer_id", transfer.TransferID), slog.String("source_journal_id", transfer.SourceJournalID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List transfer requests
// @Description Retrieves a company's transfer requests, newest first.
// @Tags transfers
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Max results (default 50)"
// @Param   offset query int false "Offset for pagination"
// @Success 200 {array} dto.TransferResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transfers, err := h.transferService.ListTransfers(c.Request.Context(), companyID, limit, offset, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this company"})
			return
		}
		logger.Error("Failed to list transfers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transfers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponses(transfers))
}

// getTransfer godoc
// @Summary Get a transfer request
// @Description Retrieves a transfer request, including its derived variance.
// @Tags transfers
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transfer_id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/transfers/{transfer_id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transferID := c.Param("transfer_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfer, err := h.transferService.GetTransferByID(c.Request.Context(), companyID, transferID, userID)
	if err != nil {
		if !respondTransferError(c, err) {
			logger.Error("Failed to get transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// updateTransfer godoc
// @Summary Update a draft transfer
// @Description Updates the date, input amount or reason of a draft transfer. Validated transfers cannot be changed.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transfer_id path string true "Transfer ID"
// @Param   transfer body dto.UpdateTransferRequest true "Fields to update"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/transfers/{transfer_id} [put]
func (h *transferHandler) updateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transferID := c.Param("transfer_id")

	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfer, err := h.transferService.UpdateTransfer(c.Request.Context(), companyID, transferID, req, userID)
	if err != nil {
		if !respondTransferError(c, err) {
			logger.Error("Failed to update transfer in service", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update transfer"})
		}
		return
	}

	logger.Info("Transfer updated", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// validateTransfer godoc
// @Summary Validate a transfer request
// @Description Runs the precondition checks, creates and posts the two-line ledger entry on the central journal, and marks the transfer validated.
// @Tags transfers
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transfer_id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Precondition or validation failure; the transfer stays in draft"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/transfers/{transfer_id}/validate [post]
func (h *transferHandler) validateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transferID := c.Param("transfer_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("transfer_id", transferID), slog.String("user_id", userID))

	transfer, err := h.transferService.ValidateTransfer(c.Request.Context(), companyID, transferID, userID)
	if err != nil {
		if !respondTransferError(c, err) {
			logger.Error("Failed to validate transfer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to validate transfer"})
		}
		return
	}

	logger.Info("Transfer validated", slog.String("entry_id", *transfer.EntryID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}
