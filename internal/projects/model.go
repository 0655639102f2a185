package projects

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type Project struct {
	ID          string
	Name        string
	Code        string
	Description string
	StartDate   string // YYYY-MM-DD
	EndDate     *string
	Budget      decimal.Decimal
	Active      bool
	CreatedAt   time.Time
}

func (p Project) toDTO() ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}
