package projects

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"pointage-backend/internal/reconcile"
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, store: NewStore(db)}
}

// GET /projects
func (s *Service) List(ctx context.Context, q ListQuery) ([]ProjectResponse, error) {
	list, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, p.toDTO())
	}
	return out, nil
}

// POST /projects
func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	p, err := buildProject(req)
	if err != nil {
		return ProjectResponse{}, err
	}
	if err := s.store.InsertBatch(ctx, []Project{p}); err != nil {
		return ProjectResponse{}, err
	}
	return p.toDTO(), nil
}

// PUT /projects/:id
func (s *Service) Update(ctx context.Context, id string, req UpdateProjectRequest) error {
	if req.isEmpty() {
		return ErrInvalid("no fields to update")
	}
	if err := validateUpdate(req); err != nil {
		return err
	}
	n, err := s.store.Update(ctx, id, req)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("project not found")
	}
	return nil
}

// DELETE /projects/:id
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("project not found")
	}
	return nil
}

// PUT /projects/batch — same reconciliation pass as the agents grid.
func (s *Service) BatchSave(ctx context.Context, req BatchSaveRequest) (BatchSaveResult, error) {
	set := reconcile.NewSet[pendingProject]()
	for i, row := range req.New {
		tempID := row.TempID
		if tempID == "" {
			tempID = fmt.Sprintf("new-%d", i)
		}
		set.StageNew(tempID, pendingProject{create: &row.CreateProjectRequest})
	}
	for _, row := range req.Edited {
		set.StageEdit(row.ID, pendingProject{update: &row.UpdateProjectRequest})
	}

	plan := set.Partition(
		func(p pendingProject) bool {
			return p.create != nil && p.create.Name != "" && p.create.Code != ""
		},
		func(p pendingProject) bool {
			return p.update != nil && !p.update.isEmpty()
		},
	)

	var res BatchSaveResult
	res.Skipped = plan.Skipped
	if len(plan.Inserts) == 0 && len(plan.Updates) == 0 {
		return res, ErrInvalid("no valid rows to save")
	}

	toInsert := make([]Project, 0, len(plan.Inserts))
	for _, p := range plan.Inserts {
		proj, err := buildProject(*p.create)
		if err != nil {
			return res, err
		}
		toInsert = append(toInsert, proj)
	}
	if len(toInsert) > 0 {
		if err := s.store.InsertBatch(ctx, toInsert); err != nil {
			return res, err
		}
		res.Inserted = len(toInsert)
	}

	for _, u := range plan.Updates {
		if err := validateUpdate(*u.Fields.update); err != nil {
			return res, err
		}
		n, err := s.store.Update(ctx, u.ID, *u.Fields.update)
		if err != nil {
			return res, err
		}
		if n == 0 {
			return res, ErrNotFound("project not found: " + u.ID)
		}
		res.Updated++
	}
	return res, nil
}

type pendingProject struct {
	create *CreateProjectRequest
	update *UpdateProjectRequest
}

func buildProject(req CreateProjectRequest) (Project, error) {
	if req.Name == "" {
		return Project{}, ErrInvalid("name is required")
	}
	if req.Code == "" {
		return Project{}, ErrInvalid("code is required")
	}
	start, err := time.ParseInLocation(DateLayout, req.StartDate, time.UTC)
	if err != nil {
		return Project{}, ErrInvalid("start_date must be YYYY-MM-DD")
	}
	if req.EndDate != nil && *req.EndDate != "" {
		end, err := time.ParseInLocation(DateLayout, *req.EndDate, time.UTC)
		if err != nil {
			return Project{}, ErrInvalid("end_date must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return Project{}, ErrInvalid("end_date must be >= start_date")
		}
	}
	if req.Budget.IsNegative() {
		return Project{}, ErrInvalid("budget must be >= 0")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return Project{
		ID:          newID(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Active:      active,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func validateUpdate(req UpdateProjectRequest) error {
	if req.Name != nil && *req.Name == "" {
		return ErrInvalid("name cannot be empty")
	}
	if req.Code != nil && *req.Code == "" {
		return ErrInvalid("code cannot be empty")
	}
	if req.StartDate != nil {
		if _, err := time.ParseInLocation(DateLayout, *req.StartDate, time.UTC); err != nil {
			return ErrInvalid("start_date must be YYYY-MM-DD")
		}
	}
	if req.EndDate != nil && *req.EndDate != "" {
		if _, err := time.ParseInLocation(DateLayout, *req.EndDate, time.UTC); err != nil {
			return ErrInvalid("end_date must be YYYY-MM-DD")
		}
	}
	if req.Budget != nil && req.Budget.IsNegative() {
		return ErrInvalid("budget must be >= 0")
	}
	return nil
}

func newID() string {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
