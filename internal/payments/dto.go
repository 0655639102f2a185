package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

type SummaryQuery struct {
	From      string
	To        string
	AgentID   *string
	ProjectID *string
}

type SummaryResponse struct {
	Items []Summary `json:"items"`
	Total int       `json:"total"`
	// TotalGlobal is the exact decimal sum of all groups; the display
	// string carries the locale-formatted amount with the currency.
	TotalGlobal        decimal.Decimal `json:"total_global"`
	TotalGlobalDisplay string          `json:"total_global_display"`
}

// SelectedSummary is one summary row the user ticked for payment
// generation. The amount is carried verbatim into the payment, never
// recomputed from entries.
type SelectedSummary struct {
	AgentID     string          `json:"agent_id" binding:"required"`
	ProjectID   string          `json:"project_id"`
	ProjectCode string          `json:"project_code"`
	TotalDays   int             `json:"total_days"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type GeneratePaymentsRequest struct {
	PeriodStart   string            `json:"period_start" binding:"required"` // YYYY-MM-DD
	PeriodEnd     string            `json:"period_end" binding:"required"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	Summaries     []SelectedSummary `json:"summaries"`
}

type GenerateResult struct {
	Generated int               `json:"generated"`
	Payments  []PaymentResponse `json:"payments"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	AgentID       string          `json:"agent_id"`
	ProjectID     *string         `json:"project_id,omitempty"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	AgentName     string          `json:"agent_name,omitempty"`
	EmployeeID    string          `json:"employee_id,omitempty"`
}

type ListQuery struct {
	AgentID *string
	Status  *string
	From    *string // payment_date >=
	To      *string // payment_date <=
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
