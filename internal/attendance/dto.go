package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"

	// AbsenceSentinel is the grid's "no project today" selection. Rows
	// carrying it are never persisted.
	AbsenceSentinel = "ABSENT"
)

// DefaultHours is the pre-filled workday length for a blank sheet row.
var DefaultHours = decimal.NewFromInt(8)

type CreateEntryRequest struct {
	AgentID     string           `json:"agent_id" binding:"required"`
	ProjectID   string           `json:"project_id" binding:"required"`
	Date        string           `json:"date" binding:"required"` // YYYY-MM-DD
	HoursWorked *decimal.Decimal `json:"hours_worked,omitempty"`  // defaults to 8
	DailyAmount *decimal.Decimal `json:"daily_amount,omitempty"`  // defaults to the agent's daily_rate
	Notes       string           `json:"notes"`
}

type EntryResponse struct {
	ID          string          `json:"id"`
	AgentID     string          `json:"agent_id"`
	ProjectID   string          `json:"project_id"`
	Date        string          `json:"date"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	DailyAmount decimal.Decimal `json:"daily_amount"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	AgentName   string          `json:"agent_name,omitempty"`
	EmployeeID  string          `json:"employee_id,omitempty"`
	ProjectName string          `json:"project_name,omitempty"`
	ProjectCode string          `json:"project_code,omitempty"`
}

type ListQuery struct {
	Date      *string
	From      *string
	To        *string
	AgentID   *string
	ProjectID *string
}

// SheetRow is one roster line of the daily pointing grid: the agent,
// plus either their persisted entry for the date or blank defaults.
type SheetRow struct {
	AgentID      string          `json:"agent_id"`
	EmployeeID   string          `json:"employee_id"`
	FullName     string          `json:"full_name"`
	AttendanceID *string         `json:"attendance_id,omitempty"`
	ProjectID    string          `json:"project_id"` // empty means absent
	HoursWorked  decimal.Decimal `json:"hours_worked"`
	DailyAmount  decimal.Decimal `json:"daily_amount"`
	Notes        string          `json:"notes"`
}

type SheetResponse struct {
	Date        string          `json:"date"`
	Rows        []SheetRow      `json:"rows"`
	Present     int             `json:"present"`
	Absent      int             `json:"absent"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SaveSheetRow is the editable subset sent back by the grid. ProjectID
// may be the absence sentinel; DailyAmount nil means "use the default".
type SaveSheetRow struct {
	AgentID      string           `json:"agent_id" binding:"required"`
	AttendanceID *string          `json:"attendance_id,omitempty"`
	ProjectID    string           `json:"project_id"`
	HoursWorked  *decimal.Decimal `json:"hours_worked,omitempty"`
	DailyAmount  *decimal.Decimal `json:"daily_amount,omitempty"`
	Notes        string           `json:"notes"`
}

type SaveSheetRequest struct {
	Date string         `json:"date" binding:"required"`
	Rows []SaveSheetRow `json:"rows"`
}

type SaveSheetResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}
