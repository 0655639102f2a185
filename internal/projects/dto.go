package projects

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Code        string          `json:"code" binding:"required"`
	Description string          `json:"description"`
	StartDate   string          `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     *string         `json:"end_date,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	Active      *bool           `json:"active,omitempty"` // defaults to true
}

// UpdateProjectRequest carries only the changed fields. An empty
// end_date string clears the column.
type UpdateProjectRequest struct {
	Name        *string          `json:"name,omitempty"`
	Code        *string          `json:"code,omitempty"`
	Description *string          `json:"description,omitempty"`
	StartDate   *string          `json:"start_date,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

func (u UpdateProjectRequest) isEmpty() bool {
	return u.Name == nil && u.Code == nil && u.Description == nil &&
		u.StartDate == nil && u.EndDate == nil && u.Budget == nil && u.Active == nil
}

type ProjectResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ListQuery struct {
	Active *bool
	Order  string // name (default) or created_at_desc
}

type NewProjectRow struct {
	TempID string `json:"temp_id"`
	CreateProjectRequest
}

type EditedProjectRow struct {
	ID string `json:"id" binding:"required"`
	UpdateProjectRequest
}

type BatchSaveRequest struct {
	New    []NewProjectRow    `json:"new"`
	Edited []EditedProjectRow `json:"edited"`
}

type BatchSaveResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}
