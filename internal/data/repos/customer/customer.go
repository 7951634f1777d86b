package customer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/onboarding-backend/internal/data/models"
	customerdomain "github.com/yungbote/onboarding-backend/internal/domain/customer"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

type CustomerRepo interface {
	Save(dbc dbctx.Context, c *customerdomain.Customer) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*customerdomain.Customer, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*customerdomain.Customer, error)
	List(dbc dbctx.Context) ([]*customerdomain.Customer, error)
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	repoLog := baseLog.With("repo", "CustomerRepo")
	return &customerRepo{db: db, log: repoLog}
}

func (cr *customerRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (cr *customerRepo) Save(dbc dbctx.Context, c *customerdomain.Customer) error {
	if c == nil {
		return fmt.Errorf("nil customer")
	}
	row := &models.Customer{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	return cr.conn(dbc).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "user_id", "updated_at"}),
	}).Create(row).Error
}

func (cr *customerRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*customerdomain.Customer, error) {
	var row models.Customer
	if err := cr.conn(dbc).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return hydrate(&row), nil
}

func (cr *customerRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*customerdomain.Customer, error) {
	var rows []*models.Customer
	if err := cr.conn(dbc).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return hydrateAll(rows), nil
}

func (cr *customerRepo) List(dbc dbctx.Context) ([]*customerdomain.Customer, error) {
	var rows []*models.Customer
	if err := cr.conn(dbc).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return hydrateAll(rows), nil
}

func hydrate(row *models.Customer) *customerdomain.Customer {
	return customerdomain.Reconstitute(row.ID, row.Name, row.Phone, row.UserID, row.CreatedAt, row.UpdatedAt)
}

func hydrateAll(rows []*models.Customer) []*customerdomain.Customer {
	out := make([]*customerdomain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, hydrate(row))
	}
	return out
}
