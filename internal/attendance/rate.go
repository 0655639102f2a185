package attendance

import "github.com/shopspring/decimal"

// ApplyProjectChange is the grid rule for the project column. Picking
// the absence sentinel clears the project and forces the amount to 0;
// picking a real project resets the amount to the agent's daily rate.
// Later edits to other fields leave the amount alone.
func ApplyProjectChange(row SheetRow, dailyRate decimal.Decimal, selection string) SheetRow {
	switch {
	case selection == AbsenceSentinel:
		row.ProjectID = ""
		row.DailyAmount = decimal.Zero
	case selection != "":
		row.ProjectID = selection
		row.DailyAmount = dailyRate
	}
	return row
}

// ResolveDailyAmount picks the amount to persist for a present row:
// the user's explicit value when present, the agent's daily rate
// otherwise.
func ResolveDailyAmount(dailyRate decimal.Decimal, entered *decimal.Decimal) decimal.Decimal {
	if entered != nil {
		return *entered
	}
	return dailyRate
}

// ResolveHours defaults a missing hours value to the standard workday.
func ResolveHours(entered *decimal.Decimal) decimal.Decimal {
	if entered != nil {
		return *entered
	}
	return DefaultHours
}
