package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/data/repos/testutil"
	paymentdomain "github.com/yungbote/onboarding-backend/internal/domain/payment"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
)

func newPayment(t *testing.T, userID uuid.UUID) *paymentdomain.Payment {
	t.Helper()
	amount, err := paymentdomain.ParseAmount(250)
	if err != nil {
		t.Fatalf("ParseAmount: %v", err)
	}
	p, err := paymentdomain.New(uuid.Nil, userID, uuid.New(), amount)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestPaymentRepoRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewPaymentRepo(db, testutil.Logger(t))
	p := newPayment(t, uuid.New())

	if err := repo.Save(dbc, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID: expected a payment")
	}
	if got.Status != paymentdomain.StatusPending {
		t.Fatalf("expected PENDING, got %s", got.Status)
	}
	if got.Amount.Value() != 250 {
		t.Fatalf("amount mismatch: %v", got.Amount.Value())
	}
}

func TestPaymentRepoPersistsTransition(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewPaymentRepo(db, testutil.Logger(t))
	p := newPayment(t, uuid.New())
	if err := repo.Save(dbc, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := p.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := repo.Save(dbc, p); err != nil {
		t.Fatalf("Save after Complete: %v", err)
	}

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != paymentdomain.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
}

func TestPaymentRepoGetByUserID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewPaymentRepo(db, testutil.Logger(t))
	userID := uuid.New()

	first := newPayment(t, userID)
	second := newPayment(t, userID)
	other := newPayment(t, uuid.New())
	for _, p := range []*paymentdomain.Payment{first, second, other} {
		if err := repo.Save(dbc, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := repo.GetByUserID(dbc, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 payments for user, got %d", len(got))
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for a miss, got %+v", missing)
	}
}
