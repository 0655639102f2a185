package payments

import (
	"fmt"
	"time"
)

// buildPayments turns the selected summary rows into pending payment
// records. One payment per row; the amount is copied from the row as
// selected, never recomputed. payment_date is the generation day, not
// the period end.
func buildPayments(req GeneratePaymentsRequest, now time.Time, newID func() (string, error)) ([]Payment, error) {
	if len(req.Summaries) == 0 {
		return nil, ErrInvalid("no summary rows selected")
	}
	start, err := time.ParseInLocation(DateLayout, req.PeriodStart, time.UTC)
	if err != nil {
		return nil, ErrInvalid("period_start must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(DateLayout, req.PeriodEnd, time.UTC)
	if err != nil {
		return nil, ErrInvalid("period_end must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, ErrInvalid("period_end must be >= period_start")
	}
	if !validMethod(req.PaymentMethod) {
		return nil, ErrInvalid("payment_method must be bank_transfer, cash or check")
	}

	paymentDate := now.UTC().Format(DateLayout)
	out := make([]Payment, 0, len(req.Summaries))
	for _, sel := range req.Summaries {
		if sel.AgentID == "" {
			return nil, ErrInvalid("summary row without agent_id")
		}
		id, err := newID()
		if err != nil {
			return nil, err
		}
		var projectID *string
		if sel.ProjectID != "" {
			v := sel.ProjectID
			projectID = &v
		}
		out = append(out, Payment{
			ID:            id,
			AgentID:       sel.AgentID,
			ProjectID:     projectID,
			PeriodStart:   req.PeriodStart,
			PeriodEnd:     req.PeriodEnd,
			TotalAmount:   sel.TotalAmount,
			PaymentDate:   paymentDate,
			PaymentMethod: req.PaymentMethod,
			Status:        StatusPending,
			Notes:         fmt.Sprintf("%d jours de travail - %s", sel.TotalDays, sel.ProjectCode),
			CreatedAt:     now.UTC(),
		})
	}
	return out, nil
}
