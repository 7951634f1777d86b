// Package uow provides the transactional unit-of-work boundary: every write
// issued through the bound dbctx becomes visible atomically, and any error
// rolls the whole operation back unmodified.
package uow

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
)

type UnitOfWork interface {
	Execute(ctx context.Context, operation func(dbc dbctx.Context) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func New(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// Execute opens a transaction, invokes operation with a dbctx bound to it,
// commits on nil and rolls back on error. The operation's error is surfaced
// unmodified.
func (u *gormUnitOfWork) Execute(ctx context.Context, operation func(dbc dbctx.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return operation(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
