package eventlog

import (
	"context"
	"testing"

	"github.com/yungbote/onboarding-backend/internal/data/repos/testutil"
	"github.com/yungbote/onboarding-backend/internal/domain"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
)

func TestEventLogAppendAndList(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewEventLogRepo(db, testutil.Logger(t))

	first := domain.NewEvent("audit_test_event", map[string]string{"k": "v"})
	second := domain.NewEvent("audit_test_event", map[string]string{"k": "w"})
	other := domain.NewEvent("audit_other_event", nil)

	for _, ev := range []domain.Event{first, second, other} {
		if err := repo.Append(dbc, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	rows, err := repo.ListByName(dbc, "audit_test_event")
	if err != nil {
		t.Fatalf("ListByName: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Name != "audit_test_event" {
			t.Fatalf("unexpected row name %q", row.Name)
		}
		if len(row.Payload) == 0 {
			t.Fatal("expected a serialized payload")
		}
	}
}
