package payments

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"pointage-backend/internal/platform/db"
)

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

func NewService(d *sql.DB) *Service {
	return &Service{
		db:    d,
		store: NewStore(d),
		clock: realClock{},
		id:    ulidGen{},
	}
}

// GET /payments/summary
func (s *Service) Summary(ctx context.Context, q SummaryQuery) (SummaryResponse, error) {
	if err := validatePeriod(q.From, q.To); err != nil {
		return SummaryResponse{}, err
	}

	var lines []Line
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		var err error
		lines, err = NewStore(tx).Lines(ctx, q)
		return err
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	items := Aggregate(lines)
	total := GrandTotal(items)
	return SummaryResponse{
		Items:              items,
		Total:              len(items),
		TotalGlobal:        total,
		TotalGlobalDisplay: displayAmount(total),
	}, nil
}

// GET /payments/summary/export
func (s *Service) ExportCSV(ctx context.Context, q SummaryQuery) ([]byte, string, error) {
	res, err := s.Summary(ctx, q)
	if err != nil {
		return nil, "", err
	}
	data, err := buildCSV(res.Items)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("paiements_%s_%s.csv", q.From, q.To)
	return data, name, nil
}

// POST /payments/generate
//
// One pending payment per selected row. The insert is a single
// multi-row statement inside a transaction, so a failure leaves no
// payments behind for the call.
func (s *Service) Generate(ctx context.Context, req GeneratePaymentsRequest) (GenerateResult, error) {
	list, err := buildPayments(req, s.clock.Now(), s.id.New)
	if err != nil {
		return GenerateResult{}, err
	}

	err = db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		return NewStore(tx).InsertBatch(ctx, list)
	})
	if err != nil {
		return GenerateResult{}, err
	}

	out := GenerateResult{Generated: len(list), Payments: make([]PaymentResponse, 0, len(list))}
	for _, p := range list {
		out.Payments = append(out.Payments, paymentRow{Payment: p}.toDTO())
	}
	return out, nil
}

// GET /payments
func (s *Service) List(ctx context.Context, q ListQuery) ([]PaymentResponse, error) {
	rows, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDTO())
	}
	return out, nil
}

// PATCH /payments/:id/status — pending payments can be marked paid or
// cancelled; any other transition is a conflict.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if status != StatusPaid && status != StatusCancelled {
		return ErrInvalid("status must be paid or cancelled")
	}
	current, err := s.store.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	if current != StatusPending {
		return ErrConflict("payment is not pending")
	}
	n, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("payment not found")
	}
	return nil
}

// DELETE /payments/:id
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("payment not found")
	}
	return nil
}

func validatePeriod(from, to string) error {
	start, err := time.ParseInLocation(DateLayout, from, time.UTC)
	if err != nil {
		return ErrInvalid("from must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(DateLayout, to, time.UTC)
	if err != nil {
		return ErrInvalid("to must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return ErrInvalid("to must be >= from")
	}
	return nil
}
