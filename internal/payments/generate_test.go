package payments

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqID() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("01HXPAY%03d", n), nil
	}
}

func TestBuildPaymentsFromSelection(t *testing.T) {
	now := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
	req := GeneratePaymentsRequest{
		PeriodStart:   "2025-02-01",
		PeriodEnd:     "2025-02-28",
		PaymentMethod: MethodCash,
		Summaries: []SelectedSummary{
			{AgentID: "01HXA", ProjectID: "01HXP", ProjectCode: "CN-01",
				TotalDays: 20, TotalAmount: dec("40000.00")},
			{AgentID: "01HXB", ProjectID: "01HXQ", ProjectCode: "CS-02",
				TotalDays: 18, TotalAmount: dec("27000.00")},
		},
	}

	got, err := buildPayments(req, now, seqID())

	require.NoError(t, err)
	require.Len(t, got, 2)

	p := got[0]
	assert.Equal(t, "01HXPAY001", p.ID)
	assert.Equal(t, "01HXA", p.AgentID)
	require.NotNil(t, p.ProjectID)
	assert.Equal(t, "01HXP", *p.ProjectID)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, MethodCash, p.PaymentMethod)
	// Amount is carried verbatim from the selected row.
	assert.True(t, p.TotalAmount.Equal(dec("40000.00")))
	// payment_date is the day of generation, not the period end.
	assert.Equal(t, "2025-03-05", p.PaymentDate)
	assert.Equal(t, "20 jours de travail - CN-01", p.Notes)

	assert.Equal(t, "18 jours de travail - CS-02", got[1].Notes)
}

func TestBuildPaymentsRejectsEmptySelection(t *testing.T) {
	req := GeneratePaymentsRequest{
		PeriodStart:   "2025-02-01",
		PeriodEnd:     "2025-02-28",
		PaymentMethod: MethodBankTransfer,
	}

	_, err := buildPayments(req, time.Now(), seqID())

	var api *APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, CodeInvalidArgument, api.Code)
}

func TestBuildPaymentsValidatesPeriodAndMethod(t *testing.T) {
	sel := []SelectedSummary{{AgentID: "01HXA", TotalAmount: dec("100")}}

	cases := []struct {
		name string
		req  GeneratePaymentsRequest
	}{
		{"bad start", GeneratePaymentsRequest{PeriodStart: "01/02/2025", PeriodEnd: "2025-02-28", PaymentMethod: MethodCash, Summaries: sel}},
		{"bad end", GeneratePaymentsRequest{PeriodStart: "2025-02-01", PeriodEnd: "28-02-2025", PaymentMethod: MethodCash, Summaries: sel}},
		{"inverted", GeneratePaymentsRequest{PeriodStart: "2025-02-28", PeriodEnd: "2025-02-01", PaymentMethod: MethodCash, Summaries: sel}},
		{"unknown method", GeneratePaymentsRequest{PeriodStart: "2025-02-01", PeriodEnd: "2025-02-28", PaymentMethod: "crypto", Summaries: sel}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildPayments(tc.req, time.Now(), seqID())
			var api *APIError
			require.ErrorAs(t, err, &api)
			assert.Equal(t, CodeInvalidArgument, api.Code)
		})
	}
}

func TestBuildPaymentsAllowsMissingProject(t *testing.T) {
	req := GeneratePaymentsRequest{
		PeriodStart:   "2025-02-01",
		PeriodEnd:     "2025-02-28",
		PaymentMethod: MethodCheck,
		Summaries:     []SelectedSummary{{AgentID: "01HXA", TotalDays: 5, TotalAmount: dec("5000")}},
	}

	got, err := buildPayments(req, time.Now(), seqID())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].ProjectID)
}
