package request

// StatementRequest represents payroll statement query parameters
type StatementRequest struct {
	Hours float64 `form:"hours,default=0" binding:"min=0"`
}

// RecordPaymentRequest represents a request to persist a payroll payment
type RecordPaymentRequest struct {
	Hours float64 `json:"hours" binding:"min=0"`
}

// RaffleRangeRequest represents raffle summary and draw query parameters
type RaffleRangeRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}
