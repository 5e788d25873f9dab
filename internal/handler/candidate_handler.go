package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/service"
)

// CandidateHandler handles candidate roster endpoints.
type CandidateHandler struct {
	candidateService service.CandidateService
}

// NewCandidateHandler creates a new candidate handler.
func NewCandidateHandler(candidateService service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService}
}

// CandidateRequest represents a create/update candidate request. Vote count
// and voter references are not bindable: the ledger owns them.
type CandidateRequest struct {
	Name  string `json:"name" validate:"required"`
	Party string `json:"party" validate:"required"`
	Age   int    `json:"age" validate:"required,gte=25"`
}

// Create godoc
// @Summary Add a candidate (admin only)
// @Tags candidate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CandidateRequest true "Candidate data"
// @Success 201 {object} model.Candidate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /candidate [post]
func (h *CandidateHandler) Create(c echo.Context) error {
	var req CandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	candidate, err := h.candidateService.Create(c.Request().Context(), service.CandidateParams{
		Name:  req.Name,
		Party: req.Party,
		Age:   req.Age,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, candidate)
}

// Update godoc
// @Summary Update a candidate's profile fields (admin only)
// @Tags candidate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param candidateID path string true "Candidate ID"
// @Param request body CandidateRequest true "Candidate data"
// @Success 200 {object} model.Candidate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /candidate/{candidateID} [put]
func (h *CandidateHandler) Update(c echo.Context) error {
	candidateID, err := uuid.Parse(c.Param("candidateID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid candidate id",
			Code:  "VALIDATION_ERROR",
		})
	}

	var req CandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	candidate, err := h.candidateService.Update(c.Request().Context(), candidateID, service.CandidateParams{
		Name:  req.Name,
		Party: req.Party,
		Age:   req.Age,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, candidate)
}

// Delete godoc
// @Summary Remove a candidate (admin only)
// @Tags candidate
// @Produce json
// @Security BearerAuth
// @Param candidateID path string true "Candidate ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /candidate/{candidateID} [delete]
func (h *CandidateHandler) Delete(c echo.Context) error {
	candidateID, err := uuid.Parse(c.Param("candidateID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid candidate id",
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := h.candidateService.Delete(c.Request().Context(), candidateID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "candidate deleted successfully",
	})
}

// List godoc
// @Summary List all candidates
// @Tags candidate
// @Produce json
// @Success 200 {array} service.CandidateView
// @Router /candidate [get]
func (h *CandidateHandler) List(c echo.Context) error {
	candidates, err := h.candidateService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, candidates)
}
