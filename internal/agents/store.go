package agents

import (
	"bytes"
	"context"
	"strings"

	"pointage-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(d db.DBTX) *Store { return &Store{db: d} }

const agentColumns = `id, full_name, employee_id, daily_rate, monthly_rate, payment_type, phone, email, active, created_at`

func (s *Store) List(ctx context.Context, q ListQuery) ([]Agent, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`SELECT ` + agentColumns + ` FROM agents`)
	if q.Active != nil {
		wheres = append(wheres, "active = ?")
		args = append(args, boolToInt(*q.Active))
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	switch q.Order {
	case "created_at_desc":
		buf.WriteString(" ORDER BY created_at DESC, id DESC")
	default:
		buf.WriteString(" ORDER BY full_name ASC, id ASC")
	}

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Agent
	for rows.Next() {
		var a Agent
		var activeInt int
		if err := rows.Scan(&a.ID, &a.FullName, &a.EmployeeID, &a.DailyRate, &a.MonthlyRate,
			&a.PaymentType, &a.Phone, &a.Email, &activeInt, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Active = activeInt != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, id string) (*Agent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE id = ? LIMIT 1`, id)
	var a Agent
	var activeInt int
	if err := row.Scan(&a.ID, &a.FullName, &a.EmployeeID, &a.DailyRate, &a.MonthlyRate,
		&a.PaymentType, &a.Phone, &a.Email, &activeInt, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Active = activeInt != 0
	return &a, nil
}

// InsertBatch writes all rows in one multi-row INSERT.
func (s *Store) InsertBatch(ctx context.Context, list []Agent) error {
	if len(list) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO agents (` + agentColumns + `) VALUES `)
	args := make([]any, 0, len(list)*10)
	for i, a := range list {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, a.ID, a.FullName, a.EmployeeID, a.DailyRate, a.MonthlyRate,
			a.PaymentType, a.Phone, a.Email, boolToInt(a.Active), a.CreatedAt.UTC())
	}
	_, err := s.db.ExecContext(ctx, buf.String(), args...)
	return err
}

// Update applies only the populated fields; returns rows affected.
func (s *Store) Update(ctx context.Context, id string, f UpdateAgentRequest) (int64, error) {
	var (
		sets []string
		args []any
	)
	if f.FullName != nil {
		sets = append(sets, "full_name = ?")
		args = append(args, *f.FullName)
	}
	if f.EmployeeID != nil {
		sets = append(sets, "employee_id = ?")
		args = append(args, *f.EmployeeID)
	}
	if f.DailyRate != nil {
		sets = append(sets, "daily_rate = ?")
		args = append(args, *f.DailyRate)
	}
	if f.MonthlyRate != nil {
		sets = append(sets, "monthly_rate = ?")
		args = append(args, *f.MonthlyRate)
	}
	if f.PaymentType != nil {
		sets = append(sets, "payment_type = ?")
		args = append(args, *f.PaymentType)
	}
	if f.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *f.Phone)
	}
	if f.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *f.Email)
	}
	if f.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, boolToInt(*f.Active))
	}
	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE agents SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
