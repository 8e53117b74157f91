package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/application/service"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/dto/request"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/dto/response"
)

// PayrollHandler handles payroll-related HTTP requests
type PayrollHandler struct {
	payrollService *service.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// Me returns the authenticated staff member's commission settlement for
// the open period. No pay-rate fields: those are on the management view.
// @Summary My commission settlement
// @Description Commission settlement for the open period
// @Tags payroll
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /payroll/me [get]
func (h *PayrollHandler) Me(c *gin.Context) {
	staffID, ok := GetStaffID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	settlement, err := h.payrollService.Settle(c.Request.Context(), staffID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission settlement retrieved successfully", settlement)
}

// Staff returns a statement for any staff member
// @Summary Staff payroll statement
// @Description Commission settlement and base pay for a staff member's open period
// @Tags payroll
// @Produce json
// @Param id path string true "Staff ID"
// @Param hours query number false "Hours worked this period"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /payroll/staff/{id} [get]
func (h *PayrollHandler) Staff(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	var req request.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	statement, err := h.payrollService.Statement(c.Request.Context(), staffID, req.Hours, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payroll statement retrieved successfully", statement)
}

// RecordPayment persists a payment and closes the staff member's period
// @Summary Record payroll payment
// @Description Persist a payment record, closing the open period
// @Tags payroll
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body request.RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /payroll/staff/{id}/payments [post]
func (h *PayrollHandler) RecordPayment(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paidBy, ok := GetStaffID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	payment, err := h.payrollService.RecordPayment(c.Request.Context(), staffID, req.Hours, paidBy, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}
