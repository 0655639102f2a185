package agents

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentTypeDaily   = "daily"
	PaymentTypeMonthly = "monthly"
)

type Agent struct {
	ID          string
	FullName    string
	EmployeeID  string
	DailyRate   decimal.Decimal
	MonthlyRate decimal.Decimal
	PaymentType string
	Phone       string
	Email       string
	Active      bool
	CreatedAt   time.Time
}

func (a Agent) toDTO() AgentResponse {
	return AgentResponse{
		ID:          a.ID,
		FullName:    a.FullName,
		EmployeeID:  a.EmployeeID,
		DailyRate:   a.DailyRate,
		MonthlyRate: a.MonthlyRate,
		PaymentType: a.PaymentType,
		Phone:       a.Phone,
		Email:       a.Email,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt.UTC(),
	}
}
