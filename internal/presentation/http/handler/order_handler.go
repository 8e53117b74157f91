package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/application/service"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/dto/request"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/dto/response"
	"github.com/slowlifemotors/garage-pos/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	checkoutService *service.CheckoutService
	orderService    *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *service.CheckoutService, orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// Checkout prices a cart and persists the resulting order
// @Summary Checkout
// @Description Price a cart and persist the resulting order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest true "Cart data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staffID, ok := GetStaffID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	input := &service.CheckoutInput{
		StaffID:         req.StaffID,
		VehicleID:       req.VehicleID,
		CustomerID:      req.CustomerID,
		StaffCustomerID: req.StaffCustomerID,
		CustomerIsStaff: req.CustomerIsStaff,
		DiscountID:      req.DiscountID,
		VoucherAmount:   req.VoucherAmount,
		Note:            req.Note,
		Lines:           make([]service.CheckoutLineInput, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		input.Lines = append(input.Lines, service.CheckoutLineInput{
			VehicleID:      l.VehicleID,
			ModificationID: l.ModificationID,
			ModName:        l.ModName,
			Quantity:       l.Quantity,
			ComputedPrice:  l.ComputedPrice,
			PricingType:    enum.PricingType(l.PricingType),
			PricingValue:   l.PricingValue,
		})
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), staffID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// VoidLine voids a single order line and recomputes the order totals
// @Summary Void order line
// @Description Void one line and recompute the order totals
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param lineId path string true "Order line ID"
// @Param request body request.VoidLineRequest false "Void reason"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id}/lines/{lineId}/void [post]
func (h *OrderHandler) VoidLine(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		response.BadRequest(c, "Invalid order line ID")
		return
	}

	var req request.VoidLineRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	staffID, ok := GetStaffID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.orderService.VoidLine(c.Request.Context(), staffID, orderID, lineID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Order line voided successfully"
	if result.OrderVoided {
		message = "Order voided: last active line was voided"
	}
	response.OK(c, message, result)
}

// Get retrieves a single order with its lines
// @Summary Get order
// @Description Retrieve an order with its lines
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List lists the authenticated staff member's orders
// @Summary List orders
// @Description List the authenticated staff member's orders with filtering
// @Tags orders
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query int false "Order status filter"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	staffID, ok := GetStaffID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	pagParams := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(pagParams); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	pagParams.Validate()

	params := &repository.OrderFilterParams{Pagination: pagParams}

	if statusStr := c.Query("status"); statusStr != "" {
		code, err := strconv.Atoi(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status := enum.OrderStatus(code)
		params.Status = &status
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), staffID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}
