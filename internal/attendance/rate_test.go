package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyProjectChangeDefaultsAmountToDailyRate(t *testing.T) {
	row := SheetRow{AgentID: "01HXA", HoursWorked: DefaultHours}

	row = ApplyProjectChange(row, dec("2500.00"), "01HXP")

	assert.Equal(t, "01HXP", row.ProjectID)
	assert.True(t, row.DailyAmount.Equal(dec("2500.00")))
}

func TestApplyProjectChangeAbsenceClearsProjectAndAmount(t *testing.T) {
	row := SheetRow{
		AgentID:     "01HXA",
		ProjectID:   "01HXP",
		DailyAmount: dec("2500.00"),
	}

	row = ApplyProjectChange(row, dec("2500.00"), AbsenceSentinel)

	assert.Empty(t, row.ProjectID)
	assert.True(t, row.DailyAmount.IsZero())
}

func TestApplyProjectChangeResetsManualAmountOnNewProject(t *testing.T) {
	// Switching projects re-derives the amount from the rate, even if
	// the user had typed an override for the previous project.
	row := SheetRow{AgentID: "01HXA", ProjectID: "01HXP", DailyAmount: dec("3000.00")}

	row = ApplyProjectChange(row, dec("2500.00"), "01HXQ")

	assert.Equal(t, "01HXQ", row.ProjectID)
	assert.True(t, row.DailyAmount.Equal(dec("2500.00")))
}

func TestApplyProjectChangeIgnoresEmptySelection(t *testing.T) {
	row := SheetRow{AgentID: "01HXA", ProjectID: "01HXP", DailyAmount: dec("2750.50")}

	got := ApplyProjectChange(row, dec("2500.00"), "")

	assert.Equal(t, row, got)
}

func TestResolveDailyAmountPrefersEnteredValue(t *testing.T) {
	entered := dec("1800.00")
	assert.True(t, ResolveDailyAmount(dec("2500.00"), &entered).Equal(entered))
	assert.True(t, ResolveDailyAmount(dec("2500.00"), nil).Equal(dec("2500.00")))
}

func TestResolveDailyAmountKeepsExplicitZero(t *testing.T) {
	// An explicit 0 is a real value, not a request for the default.
	zero := decimal.Zero
	assert.True(t, ResolveDailyAmount(dec("2500.00"), &zero).IsZero())
}

func TestResolveHoursDefaultsToStandardWorkday(t *testing.T) {
	assert.True(t, ResolveHours(nil).Equal(dec("8")))

	half := dec("4")
	assert.True(t, ResolveHours(&half).Equal(half))
}
