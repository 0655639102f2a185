package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

const (
	MethodBankTransfer = "bank_transfer"
	MethodCash         = "cash"
	MethodCheck        = "check"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

type Payment struct {
	ID            string
	AgentID       string
	ProjectID     *string
	PeriodStart   string // YYYY-MM-DD
	PeriodEnd     string
	TotalAmount   decimal.Decimal
	PaymentDate   string
	PaymentMethod string
	Status        string
	Notes         string
	CreatedAt     time.Time
}

// paymentRow is Payment plus the joined agent label for list views.
type paymentRow struct {
	Payment
	AgentName  string
	EmployeeID string
}

func (r paymentRow) toDTO() PaymentResponse {
	return PaymentResponse{
		ID:            r.ID,
		AgentID:       r.AgentID,
		ProjectID:     r.ProjectID,
		PeriodStart:   r.PeriodStart,
		PeriodEnd:     r.PeriodEnd,
		TotalAmount:   r.TotalAmount,
		PaymentDate:   r.PaymentDate,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt.UTC(),
		AgentName:     r.AgentName,
		EmployeeID:    r.EmployeeID,
	}
}

func validMethod(m string) bool {
	return m == MethodBankTransfer || m == MethodCash || m == MethodCheck
}
