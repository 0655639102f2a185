package payments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(agentID, projectID, amount string) Line {
	return Line{
		AgentID:   agentID,
		ProjectID: projectID,
		Hours:     dec("8"),
		Amount:    dec(amount),
	}
}

func TestAggregateTwoDaysOnOneProject(t *testing.T) {
	lines := []Line{
		{AgentID: "01HXA", AgentName: "Benali Karim", EmployeeID: "EMP-001",
			ProjectID: "01HXP", ProjectName: "Chantier Nord", ProjectCode: "CN-01",
			Hours: dec("8"), Amount: dec("2000.00")},
		{AgentID: "01HXA", AgentName: "Benali Karim", EmployeeID: "EMP-001",
			ProjectID: "01HXP", ProjectName: "Chantier Nord", ProjectCode: "CN-01",
			Hours: dec("8"), Amount: dec("2000.00")},
	}

	got := Aggregate(lines)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].TotalDays)
	assert.True(t, got[0].TotalHours.Equal(dec("16")))
	assert.True(t, got[0].TotalAmount.Equal(dec("4000.00")))
	assert.Equal(t, "EMP-001", got[0].EmployeeID)
	assert.Equal(t, "CN-01", got[0].ProjectCode)
}

func TestAggregateSplitsByAgentAndProject(t *testing.T) {
	lines := []Line{
		line("01HXA", "01HXP", "2000.00"),
		line("01HXB", "01HXP", "1500.00"),
		line("01HXA", "01HXQ", "2000.00"),
		line("01HXA", "01HXP", "2000.00"),
	}

	got := Aggregate(lines)

	require.Len(t, got, 3)
	// Groups appear in order of first appearance.
	assert.Equal(t, "01HXA", got[0].AgentID)
	assert.Equal(t, "01HXP", got[0].ProjectID)
	assert.Equal(t, "01HXB", got[1].AgentID)
	assert.Equal(t, "01HXQ", got[2].ProjectID)

	assert.Equal(t, 2, got[0].TotalDays)
	assert.True(t, got[0].TotalAmount.Equal(dec("4000.00")))
	assert.Equal(t, 1, got[1].TotalDays)
	assert.Equal(t, 1, got[2].TotalDays)
}

func TestAggregateAccountsForEveryLine(t *testing.T) {
	lines := []Line{
		line("01HXA", "01HXP", "2000.00"),
		line("01HXB", "01HXQ", "1234.56"),
		line("01HXC", "01HXP", "0.01"),
		line("01HXA", "01HXP", "2000.00"),
		line("01HXB", "01HXQ", "1234.56"),
	}

	got := Aggregate(lines)

	days := 0
	for _, s := range got {
		days += s.TotalDays
	}
	assert.Equal(t, len(lines), days)

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount)
	}
	assert.True(t, GrandTotal(got).Equal(sum))
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	assert.Empty(t, got)
	assert.True(t, GrandTotal(got).IsZero())
}

func TestGrandTotalIsExact(t *testing.T) {
	// 0.1-style amounts must sum without float drift.
	summaries := []Summary{
		{TotalAmount: dec("0.10")},
		{TotalAmount: dec("0.20")},
		{TotalAmount: dec("0.30")},
	}
	assert.True(t, GrandTotal(summaries).Equal(dec("0.60")))
}
