package user

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/onboarding-backend/internal/data/models"
	userdomain "github.com/yungbote/onboarding-backend/internal/domain/user"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

// UserRepo persists the User aggregate. Save is an upsert keyed by aggregate
// id, so a retried save leaves exactly one row. Both the address and user
// rows are written through the same dbctx; callers that need the pair to
// appear atomically run Save inside a unit of work.
type UserRepo interface {
	Save(dbc dbctx.Context, u *userdomain.User) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*userdomain.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*userdomain.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	List(dbc dbctx.Context) ([]*userdomain.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (ur *userRepo) Save(dbc dbctx.Context, u *userdomain.User) error {
	if u == nil {
		return fmt.Errorf("nil user")
	}
	conn := ur.conn(dbc)

	addressRow := &models.Address{
		ID:        u.AddressID,
		Street:    u.Address.Street,
		City:      u.Address.City,
		ZipCode:   u.Address.ZipCode,
		Country:   u.Address.Country,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"street", "city", "zip_code", "country", "updated_at"}),
	}).Create(addressRow).Error; err != nil {
		return err
	}

	userRow := &models.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AddressID: u.AddressID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "address_id", "updated_at"}),
	}).Create(userRow).Error
}

func (ur *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*userdomain.User, error) {
	var row models.User
	if err := ur.conn(dbc).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ur.hydrate(dbc, &row)
}

func (ur *userRepo) GetByEmail(dbc dbctx.Context, email string) (*userdomain.User, error) {
	var row models.User
	if err := ur.conn(dbc).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ur.hydrate(dbc, &row)
}

func (ur *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := ur.conn(dbc).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) List(dbc dbctx.Context) ([]*userdomain.User, error) {
	var rows []*models.User
	if err := ur.conn(dbc).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*userdomain.User, 0, len(rows))
	for _, row := range rows {
		u, err := ur.hydrate(dbc, row)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (ur *userRepo) hydrate(dbc dbctx.Context, row *models.User) (*userdomain.User, error) {
	var addrRow models.Address
	addr := userdomain.Address{}
	err := ur.conn(dbc).Where("id = ?", row.AddressID).First(&addrRow).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		addr = userdomain.Address{
			Street:  addrRow.Street,
			City:    addrRow.City,
			ZipCode: addrRow.ZipCode,
			Country: addrRow.Country,
		}
	}
	return userdomain.Reconstitute(row.ID, row.Name, row.Email, addr, row.AddressID, row.CreatedAt, row.UpdatedAt), nil
}
