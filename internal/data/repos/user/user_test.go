package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/data/repos/testutil"
	userdomain "github.com/yungbote/onboarding-backend/internal/domain/user"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
)

func newUser(t *testing.T, email string) *userdomain.User {
	t.Helper()
	addr, err := userdomain.ParseAddress("123 Main St", "Springfield", "62704", "US")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	u, err := userdomain.New(uuid.Nil, "Alice", email, addr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return u
}

func TestUserRepoRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))
	u := newUser(t, "roundtrip@example.com")

	if err := repo.Save(dbc, u); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(dbc, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID: expected a user")
	}
	if got.Email != u.Email || got.Name != u.Name {
		t.Fatalf("GetByID: unexpected result %+v", got)
	}
	if got.Address != u.Address {
		t.Fatalf("GetByID: address mismatch %+v vs %+v", got.Address, u.Address)
	}
	if len(got.PullEvents()) != 0 {
		t.Fatal("hydrated aggregate should carry no events")
	}

	gotByEmail, err := repo.GetByEmail(dbc, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if gotByEmail == nil || gotByEmail.ID != u.ID {
		t.Fatalf("GetByEmail: unexpected result %+v", gotByEmail)
	}
}

func TestUserRepoSaveIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))
	u := newUser(t, "idempotent@example.com")

	if err := repo.Save(dbc, u); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := u.UpdateName("Alice Updated"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if err := repo.Save(dbc, u); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	all, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	count := 0
	for _, row := range all {
		if row.ID == u.ID {
			count++
			if row.Name != "Alice Updated" {
				t.Fatalf("expected updated name, got %q", row.Name)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 row for the aggregate, got %d", count)
	}
}

func TestUserRepoMissReturnsNilNil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))

	got, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a miss, got %+v", got)
	}

	got, err = repo.GetByEmail(dbc, "missing@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a miss, got %+v", got)
	}
}

func TestUserRepoEmailExists(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))
	u := newUser(t, "exists@example.com")
	if err := repo.Save(dbc, u); err != nil {
		t.Fatalf("Save: %v", err)
	}

	exists, err := repo.EmailExists(dbc, u.Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatal("EmailExists: expected true")
	}

	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatal("EmailExists (missing): expected false")
	}
}
