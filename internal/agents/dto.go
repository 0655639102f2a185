package agents

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateAgentRequest struct {
	FullName    string           `json:"full_name" binding:"required"`
	EmployeeID  string           `json:"employee_id" binding:"required"`
	DailyRate   decimal.Decimal  `json:"daily_rate"`
	MonthlyRate decimal.Decimal  `json:"monthly_rate"`
	PaymentType string           `json:"payment_type"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	Active      *bool            `json:"active,omitempty"` // defaults to true
}

// UpdateAgentRequest carries only the changed fields.
type UpdateAgentRequest struct {
	FullName    *string          `json:"full_name,omitempty"`
	EmployeeID  *string          `json:"employee_id,omitempty"`
	DailyRate   *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate,omitempty"`
	PaymentType *string          `json:"payment_type,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

func (u UpdateAgentRequest) isEmpty() bool {
	return u.FullName == nil && u.EmployeeID == nil && u.DailyRate == nil &&
		u.MonthlyRate == nil && u.PaymentType == nil && u.Phone == nil &&
		u.Email == nil && u.Active == nil
}

type AgentResponse struct {
	ID          string          `json:"id"`
	FullName    string          `json:"full_name"`
	EmployeeID  string          `json:"employee_id"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
	PaymentType string          `json:"payment_type"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ListQuery struct {
	Active *bool
	Order  string // full_name (default) or created_at_desc
}

// Batch sheet save: new rows keyed by a client temp id, edits keyed by
// the persisted row id.
type NewAgentRow struct {
	TempID string `json:"temp_id"`
	CreateAgentRequest
}

type EditedAgentRow struct {
	ID string `json:"id" binding:"required"`
	UpdateAgentRequest
}

type BatchSaveRequest struct {
	New    []NewAgentRow    `json:"new"`
	Edited []EditedAgentRow `json:"edited"`
}

type BatchSaveResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}
