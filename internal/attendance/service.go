package attendance

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ulid "github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"pointage-backend/internal/reconcile"
)

// ===== Error model (same shape as agents/projects/payments) =====

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Service struct {
	db    *sql.DB
	store *Store
	clock Clock
	id    IDGen
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:    db,
		store: NewStore(db),
		clock: realClock{},
		id:    ulidGen{},
	}
}

// GET /attendance
func (s *Service) List(ctx context.Context, q ListQuery) ([]EntryResponse, decimal.Decimal, error) {
	if err := validateListDates(q); err != nil {
		return nil, decimal.Zero, err
	}
	rows, err := s.store.List(ctx, q)
	if err != nil {
		return nil, decimal.Zero, err
	}
	out := make([]EntryResponse, 0, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		out = append(out, r.toDTO())
		total = total.Add(r.DailyAmount)
	}
	return out, total, nil
}

// POST /attendance — single pointing. A missing daily_amount defaults
// to the agent's daily rate at entry time.
func (s *Service) Create(ctx context.Context, req CreateEntryRequest) (EntryResponse, error) {
	if req.AgentID == "" {
		return EntryResponse{}, ErrInvalid("agent_id is required")
	}
	if req.ProjectID == "" || req.ProjectID == AbsenceSentinel {
		return EntryResponse{}, ErrInvalid("project_id is required")
	}
	if _, err := time.ParseInLocation(DateLayout, req.Date, time.UTC); err != nil {
		return EntryResponse{}, ErrInvalid("date must be YYYY-MM-DD")
	}

	agent, err := s.store.AgentRate(ctx, req.AgentID)
	if err != nil {
		return EntryResponse{}, err
	}
	if agent == nil {
		return EntryResponse{}, ErrNotFound("agent not found")
	}

	hours := ResolveHours(req.HoursWorked)
	amount := ResolveDailyAmount(agent.DailyRate, req.DailyAmount)
	if hours.IsNegative() || amount.IsNegative() {
		return EntryResponse{}, ErrInvalid("hours_worked and daily_amount must be >= 0")
	}

	id, err := s.id.New()
	if err != nil {
		return EntryResponse{}, err
	}
	e := Entry{
		ID:          id,
		AgentID:     req.AgentID,
		ProjectID:   req.ProjectID,
		Date:        req.Date,
		HoursWorked: hours,
		DailyAmount: amount,
		Notes:       req.Notes,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.store.InsertBatch(ctx, []Entry{e}); err != nil {
		return EntryResponse{}, err
	}
	return entryRow{Entry: e, AgentName: agent.FullName, EmployeeID: agent.EmployeeID}.toDTO(), nil
}

// DELETE /attendance/:id
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("attendance entry not found")
	}
	return nil
}

// GET /attendance/sheet — the daily pointing grid: one row per active
// agent, filled from that date's entries. When an agent already has
// several entries for the day, the earliest one backs the grid row;
// the rest stay in the table untouched.
func (s *Service) Sheet(ctx context.Context, date string) (SheetResponse, error) {
	if _, err := time.ParseInLocation(DateLayout, date, time.UTC); err != nil {
		return SheetResponse{}, ErrInvalid("date must be YYYY-MM-DD")
	}

	roster, err := s.store.Roster(ctx)
	if err != nil {
		return SheetResponse{}, err
	}
	entries, err := s.store.EntriesForDate(ctx, date)
	if err != nil {
		return SheetResponse{}, err
	}

	byAgent := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, seen := byAgent[e.AgentID]; !seen {
			byAgent[e.AgentID] = e
		}
	}

	resp := SheetResponse{Date: date, Rows: make([]SheetRow, 0, len(roster)), TotalAmount: decimal.Zero}
	for _, a := range roster {
		row := SheetRow{
			AgentID:     a.ID,
			EmployeeID:  a.EmployeeID,
			FullName:    a.FullName,
			HoursWorked: DefaultHours,
			DailyAmount: decimal.Zero,
		}
		if e, ok := byAgent[a.ID]; ok {
			id := e.ID
			row.AttendanceID = &id
			row.ProjectID = e.ProjectID
			row.HoursWorked = e.HoursWorked
			row.DailyAmount = e.DailyAmount
			row.Notes = e.Notes
		}
		if row.ProjectID != "" {
			resp.Present++
			resp.TotalAmount = resp.TotalAmount.Add(row.DailyAmount)
		} else {
			resp.Absent++
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

// PUT /attendance/sheet — batch save of the grid.
//
// Absent rows (empty project or the sentinel) are never persisted.
// Present rows without an attendance id are staged for the insert
// batch, rows with one for per-id updates. The insert batch is one
// call; updates follow one by one in staging order, and the first
// failure abandons the rest without rolling back what was applied.
// The caller is expected to reload the sheet afterwards.
func (s *Service) SaveSheet(ctx context.Context, req SaveSheetRequest) (SaveSheetResult, error) {
	var res SaveSheetResult
	if _, err := time.ParseInLocation(DateLayout, req.Date, time.UTC); err != nil {
		return res, ErrInvalid("date must be YYYY-MM-DD")
	}

	roster, err := s.store.Roster(ctx)
	if err != nil {
		return res, err
	}
	rates := make(map[string]decimal.Decimal, len(roster))
	for _, a := range roster {
		rates[a.ID] = a.DailyRate
	}

	set := reconcile.NewSet[pendingEntry]()
	for _, row := range req.Rows {
		if row.ProjectID == "" || row.ProjectID == AbsenceSentinel {
			continue // absent: nothing to write, existing entries stay
		}
		rate, known := rates[row.AgentID]
		if !known {
			rate = decimal.Zero
		}
		p := pendingEntry{
			agentID:   row.AgentID,
			projectID: row.ProjectID,
			hours:     ResolveHours(row.HoursWorked),
			amount:    ResolveDailyAmount(rate, row.DailyAmount),
			notes:     row.Notes,
			onRoster:  known,
		}
		if row.AttendanceID != nil && *row.AttendanceID != "" {
			set.StageEdit(*row.AttendanceID, p)
		} else {
			// One conceptual row per agent: the agent id is the
			// temporary key, so a re-sent row replaces the stale one.
			set.StageNew(row.AgentID, p)
		}
	}

	plan := set.Partition(
		func(p pendingEntry) bool {
			return p.onRoster && p.agentID != "" && p.projectID != "" && p.amount.IsPositive()
		},
		func(p pendingEntry) bool { return true },
	)
	res.Skipped = plan.Skipped
	if len(plan.Inserts) == 0 && len(plan.Updates) == 0 {
		return res, ErrInvalid("no valid rows to save")
	}

	toInsert := make([]Entry, 0, len(plan.Inserts))
	for _, p := range plan.Inserts {
		id, err := s.id.New()
		if err != nil {
			return res, err
		}
		toInsert = append(toInsert, Entry{
			ID:          id,
			AgentID:     p.agentID,
			ProjectID:   p.projectID,
			Date:        req.Date,
			HoursWorked: p.hours,
			DailyAmount: p.amount,
			Notes:       p.notes,
			CreatedAt:   s.clock.Now().UTC(),
		})
	}
	if len(toInsert) > 0 {
		if err := s.store.InsertBatch(ctx, toInsert); err != nil {
			return res, err
		}
		res.Inserted = len(toInsert)
	}

	for _, u := range plan.Updates {
		n, err := s.store.UpdateEntry(ctx, u.ID, entryUpdate{
			ProjectID:   u.Fields.projectID,
			HoursWorked: u.Fields.hours,
			DailyAmount: u.Fields.amount,
			Notes:       u.Fields.notes,
		})
		if err != nil {
			return res, err
		}
		if n == 0 {
			return res, ErrNotFound("attendance entry not found: " + u.ID)
		}
		res.Updated++
	}
	return res, nil
}

type pendingEntry struct {
	agentID   string
	projectID string
	hours     decimal.Decimal
	amount    decimal.Decimal
	notes     string
	onRoster  bool
}

func validateListDates(q ListQuery) error {
	check := func(v *string, name string) error {
		if v == nil || *v == "" {
			return nil
		}
		if _, err := time.ParseInLocation(DateLayout, *v, time.UTC); err != nil {
			return ErrInvalid(name + " must be YYYY-MM-DD")
		}
		return nil
	}
	if err := check(q.Date, "date"); err != nil {
		return err
	}
	if err := check(q.From, "from"); err != nil {
		return err
	}
	return check(q.To, "to")
}
