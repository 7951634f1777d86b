package payment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/onboarding-backend/internal/data/models"
	paymentdomain "github.com/yungbote/onboarding-backend/internal/domain/payment"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

type PaymentRepo interface {
	Save(dbc dbctx.Context, p *paymentdomain.Payment) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*paymentdomain.Payment, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*paymentdomain.Payment, error)
	List(dbc dbctx.Context) ([]*paymentdomain.Payment, error)
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	repoLog := baseLog.With("repo", "PaymentRepo")
	return &paymentRepo{db: db, log: repoLog}
}

func (pr *paymentRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (pr *paymentRepo) Save(dbc dbctx.Context, p *paymentdomain.Payment) error {
	if p == nil {
		return fmt.Errorf("nil payment")
	}
	row := &models.Payment{
		ID:         p.ID,
		UserID:     p.UserID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount.Value(),
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	return pr.conn(dbc).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "customer_id", "amount", "status", "updated_at"}),
	}).Create(row).Error
}

func (pr *paymentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*paymentdomain.Payment, error) {
	var row models.Payment
	if err := pr.conn(dbc).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return hydrate(&row)
}

func (pr *paymentRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*paymentdomain.Payment, error) {
	var rows []*models.Payment
	if err := pr.conn(dbc).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return hydrateAll(rows)
}

func (pr *paymentRepo) List(dbc dbctx.Context) ([]*paymentdomain.Payment, error) {
	var rows []*models.Payment
	if err := pr.conn(dbc).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return hydrateAll(rows)
}

func hydrate(row *models.Payment) (*paymentdomain.Payment, error) {
	amount, err := paymentdomain.ParseAmount(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("stored payment %s has invalid amount: %w", row.ID, err)
	}
	return paymentdomain.Reconstitute(
		row.ID,
		row.UserID,
		row.CustomerID,
		amount,
		paymentdomain.Status(row.Status),
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func hydrateAll(rows []*models.Payment) ([]*paymentdomain.Payment, error) {
	out := make([]*paymentdomain.Payment, 0, len(rows))
	for _, row := range rows {
		p, err := hydrate(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
