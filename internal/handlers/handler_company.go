package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/centraldesk/treasury_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{
		companyService: cs,
	}
}

// registerCompanyRoutes registers routes related to companies and their members.
// It also registers JOURNAL, ACCOUNT and TRANSFER routes nested under a
// specific company.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade, ledgerService portssvc.LedgerSvcFacade, transferService portssvc.TransferSvcFacade) {
	h := newCompanyHandler(companyService)

	companiesTopLevel := rg.Group("/companies")
	{
		companiesTopLevel.POST("", h.createCompany)
		companiesTopLevel.GET("", h.listUserCompanies)
	}

	// Routes specific to a single company (identified by company_id)
	companySpecific := rg.Group("/companies/:company_id")
	{
		companySpecific.GET("", h.getCompany)
		companySpecific.GET("/treasury-config", h.getTreasuryConfig)
		companySpecific.PUT("/treasury-config", h.updateTreasuryConfig)

		companyUsers := companySpecific.Group("/users")
		{
			companyUsers.POST("", h.addUserToCompany)
		}

		registerJournalRoutes(companySpecific, ledgerService)
		registerAccountRoutes(companySpecific, ledgerService)
		registerTransferRoutes(companySpecific, transferService)
	}
}

// createCompany godoc
// @Summary Create a new company
// @Description Creates a new company and assigns the creator as admin.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	newCompany, err := h.companyService.CreateCompany(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create company in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create company"})
		return
	}

	logger.Info("Company created successfully", slog.String("company_id", newCompany.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(newCompany))
}

// listUserCompanies godoc
// @Summary List companies for current user
// @Description Retrieves a list of companies the authenticated user belongs to.
// @Tags companies
// @Produce  json
// @Success 200 {array} dto.CompanyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listUserCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	companies, err := h.companyService.ListUserCompanies(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list companies from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list companies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponses(companies))
}

// getCompany godoc
// @Summary Get a company
// @Description Retrieves a company the authenticated user is a member of.
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this company"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Company not found"})
		default:
			logger.Error("Failed to get company", slog.String("error", err.Error()), slog.String("company_id", companyID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get company"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// getTreasuryConfig godoc
// @Summary Get the company's treasury configuration
// @Description Retrieves the central journal and transit account configured for treasury transfers.
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.TreasuryConfigResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/treasury-config [get]
func (h *companyHandler) getTreasuryConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this company"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Company not found"})
		default:
			logger.Error("Failed to get treasury config", slog.String("error", err.Error()), slog.String("company_id", companyID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get treasury config"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTreasuryConfigResponse(company))
}

// updateTreasuryConfig godoc
// @Summary Update the company's treasury configuration
// @Description Sets the central journal and/or transit account used for treasury transfers (requires admin permission).
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   config body dto.UpdateTreasuryConfigRequest true "Treasury configuration"
// @Success 200 {object} dto.TreasuryConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/treasury-config [put]
func (h *companyHandler) updateTreasuryConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.UpdateTreasuryConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	company, err := h.companyService.UpdateTreasuryConfig(c.Request.Context(), companyID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating treasury config", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Company not found"})
		default:
			logger.Error("Failed to update treasury config", slog.String("error", err.Error()), slog.String("company_id", companyID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update treasury config"})
		}
		return
	}

	logger.Info("Treasury config updated", slog.String("company_id", companyID))
	c.JSON(http.StatusOK, dto.ToTreasuryConfigResponse(company))
}

// addUserToCompany godoc
// @Summary Add a user to a company
// @Description Adds a specified user to a company with a given role (requires admin permission).
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   user_details body dto.AddUserToCompanyRequest true "User ID and Role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/users [post]
func (h *companyHandler) addUserToCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.AddUserToCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.companyService.AddUserToCompany(c.Request.Context(), companyID, req, actingUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Company or user not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "User is already a member"})
		default:
			logger.Error("Failed to add user to company", slog.String("error", err.Error()), slog.String("company_id", companyID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add user to company"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
