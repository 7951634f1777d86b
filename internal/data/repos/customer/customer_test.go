package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/data/repos/testutil"
	customerdomain "github.com/yungbote/onboarding-backend/internal/domain/customer"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
)

func newCustomer(t *testing.T, userID uuid.UUID) *customerdomain.Customer {
	t.Helper()
	c, err := customerdomain.New(uuid.Nil, "Acme", "+14155552671", userID)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCustomerRepoRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewCustomerRepo(db, testutil.Logger(t))
	c := newCustomer(t, uuid.New())

	if err := repo.Save(dbc, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(dbc, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID: expected a customer")
	}
	if got.Name != c.Name || got.Phone != c.Phone || got.UserID != c.UserID {
		t.Fatalf("GetByID: unexpected result %+v", got)
	}
}

func TestCustomerRepoSaveIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewCustomerRepo(db, testutil.Logger(t))
	c := newCustomer(t, uuid.New())

	if err := repo.Save(dbc, c); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := repo.Save(dbc, c); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := repo.GetByUserID(dbc, c.UserID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(got))
	}
}

func TestCustomerRepoMissReturnsNilNil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewCustomerRepo(db, testutil.Logger(t))
	got, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a miss, got %+v", got)
	}
}
