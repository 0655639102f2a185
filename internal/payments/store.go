package payments

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

// Lines returns the attendance entries of the period flattened with
// agent/project labels, in entry order, ready for Aggregate.
func (s *Store) Lines(ctx context.Context, q SummaryQuery) ([]Line, error) {
	var (
		buf  bytes.Buffer
		args []any
	)
	buf.WriteString(`
	SELECT at.agent_id, ag.full_name, ag.employee_id,
	       at.project_id, pr.name, pr.code,
	       at.hours_worked, at.daily_amount
	FROM attendance at
	JOIN agents ag ON ag.id = at.agent_id
	JOIN projects pr ON pr.id = at.project_id
	WHERE at.date >= ? AND at.date <= ?`)
	args = append(args, q.From, q.To)

	if q.AgentID != nil && *q.AgentID != "" {
		buf.WriteString(" AND at.agent_id = ?")
		args = append(args, *q.AgentID)
	}
	if q.ProjectID != nil && *q.ProjectID != "" {
		buf.WriteString(" AND at.project_id = ?")
		args = append(args, *q.ProjectID)
	}
	buf.WriteString(" ORDER BY at.date ASC, at.created_at ASC, at.id ASC")

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.AgentID, &l.AgentName, &l.EmployeeID,
			&l.ProjectID, &l.ProjectName, &l.ProjectCode,
			&l.Hours, &l.Amount); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// InsertBatch writes all payments in one multi-row INSERT.
func (s *Store) InsertBatch(ctx context.Context, list []Payment) error {
	if len(list) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO payments (id, agent_id, project_id, period_start, period_end, total_amount, payment_date, payment_method, status, notes, created_at) VALUES `)
	args := make([]any, 0, len(list)*11)
	for i, p := range list {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		projectID := any(nil)
		if p.ProjectID != nil && *p.ProjectID != "" {
			projectID = *p.ProjectID
		}
		args = append(args, p.ID, p.AgentID, projectID, p.PeriodStart, p.PeriodEnd,
			p.TotalAmount, p.PaymentDate, p.PaymentMethod, p.Status, p.Notes, p.CreatedAt.UTC())
	}
	_, err := s.db.ExecContext(ctx, buf.String(), args...)
	return err
}

func (s *Store) List(ctx context.Context, q ListQuery) ([]paymentRow, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)
	buf.WriteString(`
	SELECT p.id, p.agent_id, p.project_id,
	       DATE_FORMAT(p.period_start, '%Y-%m-%d'), DATE_FORMAT(p.period_end, '%Y-%m-%d'),
	       p.total_amount, DATE_FORMAT(p.payment_date, '%Y-%m-%d'),
	       p.payment_method, p.status, p.notes, p.created_at,
	       ag.full_name, ag.employee_id
	FROM payments p
	JOIN agents ag ON ag.id = p.agent_id
	`)
	if q.AgentID != nil && *q.AgentID != "" {
		wheres = append(wheres, "p.agent_id = ?")
		args = append(args, *q.AgentID)
	}
	if q.Status != nil && *q.Status != "" {
		wheres = append(wheres, "p.status = ?")
		args = append(args, *q.Status)
	}
	if q.From != nil && *q.From != "" {
		wheres = append(wheres, "p.payment_date >= ?")
		args = append(args, *q.From)
	}
	if q.To != nil && *q.To != "" {
		wheres = append(wheres, "p.payment_date <= ?")
		args = append(args, *q.To)
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	buf.WriteString(" ORDER BY p.created_at DESC, p.id DESC")

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []paymentRow
	for rows.Next() {
		var r paymentRow
		var projectID sql.NullString
		if err := rows.Scan(&r.ID, &r.AgentID, &projectID,
			&r.PeriodStart, &r.PeriodEnd, &r.TotalAmount, &r.PaymentDate,
			&r.PaymentMethod, &r.Status, &r.Notes, &r.CreatedAt,
			&r.AgentName, &r.EmployeeID); err != nil {
			return nil, err
		}
		if projectID.Valid {
			v := projectID.String
			r.ProjectID = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetStatus returns the current status of one payment, or NOT_FOUND.
func (s *Store) GetStatus(ctx context.Context, id string) (string, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM payments WHERE id = ? LIMIT 1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound("payment not found")
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE payments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
