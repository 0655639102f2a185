package projects

import (
	"bytes"
	"context"
	"database/sql"
	"strings"

	"pointage-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(d db.DBTX) *Store { return &Store{db: d} }

const selectColumns = `id, name, code, description,
DATE_FORMAT(start_date, '%Y-%m-%d') AS start_date,
DATE_FORMAT(end_date, '%Y-%m-%d') AS end_date,
budget, active, created_at`

func (s *Store) List(ctx context.Context, q ListQuery) ([]Project, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`SELECT ` + selectColumns + ` FROM projects`)
	if q.Active != nil {
		v := 0
		if *q.Active {
			v = 1
		}
		wheres = append(wheres, "active = ?")
		args = append(args, v)
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	switch q.Order {
	case "created_at_desc":
		buf.WriteString(" ORDER BY created_at DESC, id DESC")
	default:
		buf.WriteString(" ORDER BY name ASC, id ASC")
	}

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProject(rows *sql.Rows) (Project, error) {
	var p Project
	var endDate sql.NullString
	var activeInt int
	if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description,
		&p.StartDate, &endDate, &p.Budget, &activeInt, &p.CreatedAt); err != nil {
		return Project{}, err
	}
	if endDate.Valid {
		v := endDate.String
		p.EndDate = &v
	}
	p.Active = activeInt != 0
	return p, nil
}

func (s *Store) InsertBatch(ctx context.Context, list []Project) error {
	if len(list) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO projects (id, name, code, description, start_date, end_date, budget, active, created_at) VALUES `)
	args := make([]any, 0, len(list)*9)
	for i, p := range list {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		endDate := any(nil)
		if p.EndDate != nil && *p.EndDate != "" {
			endDate = *p.EndDate
		}
		active := 0
		if p.Active {
			active = 1
		}
		args = append(args, p.ID, p.Name, p.Code, p.Description, p.StartDate, endDate,
			p.Budget, active, p.CreatedAt.UTC())
	}
	_, err := s.db.ExecContext(ctx, buf.String(), args...)
	return err
}

func (s *Store) Update(ctx context.Context, id string, f UpdateProjectRequest) (int64, error) {
	var (
		sets []string
		args []any
	)
	if f.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *f.Name)
	}
	if f.Code != nil {
		sets = append(sets, "code = ?")
		args = append(args, *f.Code)
	}
	if f.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *f.Description)
	}
	if f.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		if *f.EndDate == "" {
			sets = append(sets, "end_date = NULL")
		} else {
			sets = append(sets, "end_date = ?")
			args = append(args, *f.EndDate)
		}
	}
	if f.Budget != nil {
		sets = append(sets, "budget = ?")
		args = append(args, *f.Budget)
	}
	if f.Active != nil {
		v := 0
		if *f.Active {
			v = 1
		}
		sets = append(sets, "active = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
