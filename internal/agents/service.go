package agents

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

// GET /agents
func (s *Service) List(ctx context.Context, q ListQuery) ([]AgentResponse, error) {
	list, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]AgentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, a.toDTO())
	}
	return out, nil
}

// POST /agents
func (s *Service) Create(ctx context.Context, req CreateAgentRequest) (AgentResponse, error) {
	a, err := buildAgent(req)
	if err != nil {
		return AgentResponse{}, err
	}
	if err := s.store.InsertBatch(ctx, []Agent{a}); err != nil {
		return AgentResponse{}, err
	}
	return a.toDTO(), nil
}

// PUT /agents/:id
func (s *Service) Update(ctx context.Context, id string, req UpdateAgentRequest) error {
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
		return ErrNotFound("agent not found")
	}
	return nil
}

// DELETE /agents/:id
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("agent not found")
	}
	return nil
}

// PUT /agents/batch
//
// New rows missing name or employee id are dropped from the insert
// batch; no-op edits issue no update. Inserts go out as one call, then
// updates one per id in staging order. A failed update abandons the
// rest without rolling back rows already applied; the caller reloads.
func (s *Service) BatchSave(ctx context.Context, req BatchSaveRequest) (BatchSaveResult, error) {
	set := reconcile.NewSet[pendingAgent]()
	for i, row := range req.New {
		tempID := row.TempID
		if tempID == "" {
			tempID = fmt.Sprintf("new-%d", i)
		}
		set.StageNew(tempID, pendingAgent{create: &row.CreateAgentRequest})
	}
	for _, row := range req.Edited {
		set.StageEdit(row.ID, pendingAgent{update: &row.UpdateAgentRequest})
	}

	plan := set.Partition(
		func(p pendingAgent) bool {
			return p.create != nil && p.create.FullName != "" && p.create.EmployeeID != ""
		},
		func(p pendingAgent) bool {
			return p.update != nil && !p.update.isEmpty()
		},
	)

	var res BatchSaveResult
	res.Skipped = plan.Skipped
	if len(plan.Inserts) == 0 && len(plan.Updates) == 0 {
		return res, ErrInvalid("no valid rows to save")
	}

	toInsert := make([]Agent, 0, len(plan.Inserts))
	for _, p := range plan.Inserts {
		a, err := buildAgent(*p.create)
		if err != nil {
			return res, err
		}
		toInsert = append(toInsert, a)
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
			return res, ErrNotFound("agent not found: " + u.ID)
		}
		res.Updated++
	}
	return res, nil
}

type pendingAgent struct {
	create *CreateAgentRequest
	update *UpdateAgentRequest
}

func buildAgent(req CreateAgentRequest) (Agent, error) {
	if req.FullName == "" {
		return Agent{}, ErrInvalid("full_name is required")
	}
	if req.EmployeeID == "" {
		return Agent{}, ErrInvalid("employee_id is required")
	}
	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = PaymentTypeDaily
	}
	if paymentType != PaymentTypeDaily && paymentType != PaymentTypeMonthly {
		return Agent{}, ErrInvalid("payment_type must be daily or monthly")
	}
	if req.DailyRate.IsNegative() || req.MonthlyRate.IsNegative() {
		return Agent{}, ErrInvalid("rates must be >= 0")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return Agent{
		ID:          newID(),
		FullName:    req.FullName,
		EmployeeID:  req.EmployeeID,
		DailyRate:   req.DailyRate,
		MonthlyRate: req.MonthlyRate,
		PaymentType: paymentType,
		Phone:       req.Phone,
		Email:       req.Email,
		Active:      active,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func validateUpdate(req UpdateAgentRequest) error {
	if req.FullName != nil && *req.FullName == "" {
		return ErrInvalid("full_name cannot be empty")
	}
	if req.EmployeeID != nil && *req.EmployeeID == "" {
		return ErrInvalid("employee_id cannot be empty")
	}
	if req.PaymentType != nil &&
		*req.PaymentType != PaymentTypeDaily && *req.PaymentType != PaymentTypeMonthly {
		return ErrInvalid("payment_type must be daily or monthly")
	}
	if req.DailyRate != nil && req.DailyRate.IsNegative() {
		return ErrInvalid("daily_rate must be >= 0")
	}
	if req.MonthlyRate != nil && req.MonthlyRate.IsNegative() {
		return ErrInvalid("monthly_rate must be >= 0")
	}
	return nil
}

func newID() string {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
