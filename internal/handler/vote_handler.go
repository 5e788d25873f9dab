package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/service"
)

// VoteHandler handles vote casting and the public tally.
type VoteHandler struct {
	voteService service.VoteService
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(voteService service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVote godoc
// @Summary Cast a vote for a candidate (voter only, once)
// @Tags candidate
// @Produce json
// @Security BearerAuth
// @Param candidateID path string true "Candidate ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /candidate/vote/{candidateID} [post]
func (h *VoteHandler) CastVote(c echo.Context) error {
	identity, err := CurrentIdentity(c)
	if err != nil {
		return err
	}

	candidateID, err := uuid.Parse(c.Param("candidateID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid candidate id",
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := h.voteService.CastVote(c.Request().Context(), identity, candidateID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "vote recorded successfully",
	})
}

// VoteCount godoc
// @Summary Live tally of votes per candidate, highest first
// @Tags candidate
// @Produce json
// @Success 200 {array} service.TallyEntry
// @Router /candidate/vote/count [get]
func (h *VoteHandler) VoteCount(c echo.Context) error {
	tally, err := h.voteService.Tally(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tally)
}
