package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"

	"pointage-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(d db.DBTX) *Store { return &Store{db: d} }

// List returns entries joined with their agent and project labels,
// newest first.
func (s *Store) List(ctx context.Context, q ListQuery) ([]entryRow, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`
	SELECT at.id, at.agent_id, at.project_id, DATE_FORMAT(at.date, '%Y-%m-%d') AS date,
	       at.hours_worked, at.daily_amount, at.notes, at.created_at,
	       ag.full_name, ag.employee_id, pr.name, pr.code
	FROM attendance at
	JOIN agents ag ON ag.id = at.agent_id
	JOIN projects pr ON pr.id = at.project_id
	`)

	if q.Date != nil && *q.Date != "" {
		wheres = append(wheres, "at.date = ?")
		args = append(args, *q.Date)
	} else {
		if q.From != nil && *q.From != "" {
			wheres = append(wheres, "at.date >= ?")
			args = append(args, *q.From)
		}
		if q.To != nil && *q.To != "" {
			wheres = append(wheres, "at.date <= ?")
			args = append(args, *q.To)
		}
	}
	if q.AgentID != nil && *q.AgentID != "" {
		wheres = append(wheres, "at.agent_id = ?")
		args = append(args, *q.AgentID)
	}
	if q.ProjectID != nil && *q.ProjectID != "" {
		wheres = append(wheres, "at.project_id = ?")
		args = append(args, *q.ProjectID)
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	buf.WriteString(" ORDER BY at.created_at DESC, at.id DESC")

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entryRow
	for rows.Next() {
		var r entryRow
		if err := rows.Scan(&r.ID, &r.AgentID, &r.ProjectID, &r.Date,
			&r.HoursWorked, &r.DailyAmount, &r.Notes, &r.CreatedAt,
			&r.AgentName, &r.EmployeeID, &r.ProjectName, &r.ProjectCode); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// EntriesForDate returns the raw entries of one day, oldest first so
// the sheet picks the earliest entry per agent.
func (s *Store) EntriesForDate(ctx context.Context, date string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, agent_id, project_id, DATE_FORMAT(date, '%Y-%m-%d') AS date,
	       hours_worked, daily_amount, notes, created_at
	FROM attendance
	WHERE date = ?
	ORDER BY created_at ASC, id ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AgentID, &e.ProjectID, &e.Date,
			&e.HoursWorked, &e.DailyAmount, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Roster returns the active agents in sheet order.
func (s *Store) Roster(ctx context.Context) ([]rosterAgent, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, full_name, employee_id, daily_rate
	FROM agents
	WHERE active = 1
	ORDER BY full_name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rosterAgent
	for rows.Next() {
		var a rosterAgent
		if err := rows.Scan(&a.ID, &a.FullName, &a.EmployeeID, &a.DailyRate); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AgentRate returns the daily rate of one agent, or NOT_FOUND.
func (s *Store) AgentRate(ctx context.Context, agentID string) (*rosterAgent, error) {
	var a rosterAgent
	err := s.db.QueryRowContext(ctx, `
	SELECT id, full_name, employee_id, daily_rate
	FROM agents
	WHERE id = ?
	LIMIT 1`, agentID).Scan(&a.ID, &a.FullName, &a.EmployeeID, &a.DailyRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertBatch writes all entries in one multi-row INSERT.
func (s *Store) InsertBatch(ctx context.Context, list []Entry) error {
	if len(list) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO attendance (id, agent_id, project_id, date, hours_worked, daily_amount, notes, created_at) VALUES `)
	args := make([]any, 0, len(list)*8)
	for i, e := range list {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, e.ID, e.AgentID, e.ProjectID, e.Date,
			e.HoursWorked, e.DailyAmount, e.Notes, e.CreatedAt.UTC())
	}
	_, err := s.db.ExecContext(ctx, buf.String(), args...)
	return err
}

// UpdateEntry rewrites the editable columns of one entry.
func (s *Store) UpdateEntry(ctx context.Context, id string, u entryUpdate) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	UPDATE attendance
	SET project_id = ?, hours_worked = ?, daily_amount = ?, notes = ?
	WHERE id = ?`,
		u.ProjectID, u.HoursWorked, u.DailyAmount, u.Notes, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
