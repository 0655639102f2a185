package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one pointing record: an agent on a project for a date.
type Entry struct {
	ID          string
	AgentID     string
	ProjectID   string
	Date        string // YYYY-MM-DD
	HoursWorked decimal.Decimal
	DailyAmount decimal.Decimal
	Notes       string
	CreatedAt   time.Time
}

// entryRow is Entry plus the joined agent/project labels used by the
// list view.
type entryRow struct {
	Entry
	AgentName   string
	EmployeeID  string
	ProjectName string
	ProjectCode string
}

func (r entryRow) toDTO() EntryResponse {
	return EntryResponse{
		ID:          r.ID,
		AgentID:     r.AgentID,
		ProjectID:   r.ProjectID,
		Date:        r.Date,
		HoursWorked: r.HoursWorked,
		DailyAmount: r.DailyAmount,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt.UTC(),
		AgentName:   r.AgentName,
		EmployeeID:  r.EmployeeID,
		ProjectName: r.ProjectName,
		ProjectCode: r.ProjectCode,
	}
}

// entryUpdate is the editable column set rewritten by a sheet save.
type entryUpdate struct {
	ProjectID   string
	HoursWorked decimal.Decimal
	DailyAmount decimal.Decimal
	Notes       string
}

// rosterAgent is the slice of the agents table the sheet needs.
type rosterAgent struct {
	ID         string
	FullName   string
	EmployeeID string
	DailyRate  decimal.Decimal
}
