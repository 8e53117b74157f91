package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/application/service"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/dto/request"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/dto/response"
)

// RaffleHandler handles raffle-related HTTP requests
type RaffleHandler struct {
	raffleService *service.RaffleService
}

// NewRaffleHandler creates a new raffle handler
func NewRaffleHandler(raffleService *service.RaffleService) *RaffleHandler {
	return &RaffleHandler{raffleService: raffleService}
}

// parseDateRange parses start_date and end_date query parameters
func (h *RaffleHandler) parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var req request.RaffleRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "start_date and end_date are required")
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		response.BadRequest(c, "end_date must not be before start_date")
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// Summary aggregates raffle ticket sales over a date range
// @Summary Raffle summary
// @Description Ticket totals per customer over whole days, sorted descending
// @Tags raffle
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /raffle/summary [get]
func (h *RaffleHandler) Summary(c *gin.Context) {
	start, end, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	summary, err := h.raffleService.Summary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Raffle summary retrieved successfully", summary)
}

// Draw performs a ticket-weighted random draw over a date range
// @Summary Raffle draw
// @Description Pick a winner weighted by ticket count, with wheel geometry
// @Tags raffle
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /raffle/draw [post]
func (h *RaffleHandler) Draw(c *gin.Context) {
	start, end, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.raffleService.Draw(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Winner == nil {
		response.OK(c, "No tickets sold in the selected range", result)
		return
	}
	response.OK(c, "Raffle draw completed", result)
}

// DeleteEntry removes a ledger entry from future summaries and draws
// @Summary Delete raffle entry
// @Description Soft delete one raffle ledger entry
// @Tags raffle
// @Produce json
// @Param id path string true "Raffle entry ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /raffle/entries/{id} [delete]
func (h *RaffleHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid raffle entry ID")
		return
	}

	if err := h.raffleService.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Raffle entry deleted successfully", nil)
}
