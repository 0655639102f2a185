package payments

import "github.com/shopspring/decimal"

// Line is one attendance entry flattened with its agent/project labels,
// the input grain of the payment summary.
type Line struct {
	AgentID     string
	AgentName   string
	EmployeeID  string
	ProjectID   string
	ProjectName string
	ProjectCode string
	Hours       decimal.Decimal
	Amount      decimal.Decimal
}

// Summary is one (agent, project) group over the queried period.
type Summary struct {
	AgentID     string          `json:"agent_id"`
	AgentName   string          `json:"agent_name"`
	EmployeeID  string          `json:"employee_id"`
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name"`
	ProjectCode string          `json:"project_code"`
	TotalDays   int             `json:"total_days"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Aggregate groups lines by (agent_id, project_id) in order of first
// appearance. Every line lands in exactly one group: days count lines,
// hours and amounts are exact decimal sums.
//
// Duplicate entries for the same agent/date are NOT collapsed — the
// table does not enforce that uniqueness, so they inflate the totals.
// Tightening that is a candidate constraint, not current behavior.
func Aggregate(lines []Line) []Summary {
	index := make(map[string]int, len(lines))
	out := make([]Summary, 0, len(lines))

	for _, l := range lines {
		key := l.AgentID + "\x00" + l.ProjectID
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Summary{
				AgentID:     l.AgentID,
				AgentName:   l.AgentName,
				EmployeeID:  l.EmployeeID,
				ProjectID:   l.ProjectID,
				ProjectName: l.ProjectName,
				ProjectCode: l.ProjectCode,
				TotalHours:  decimal.Zero,
				TotalAmount: decimal.Zero,
			})
		}
		out[i].TotalDays++
		out[i].TotalHours = out[i].TotalHours.Add(l.Hours)
		out[i].TotalAmount = out[i].TotalAmount.Add(l.Amount)
	}
	return out
}

// GrandTotal sums the group totals; by construction it equals the sum
// of the input lines' amounts.
func GrandTotal(summaries []Summary) decimal.Decimal {
	total := decimal.Zero
	for _, s := range summaries {
		total = total.Add(s.TotalAmount)
	}
	return total
}
