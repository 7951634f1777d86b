package eventlog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/onboarding-backend/internal/data/models"
	"github.com/yungbote/onboarding-backend/internal/domain"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

// EventLogRepo appends an audit row per published domain event.
type EventLogRepo interface {
	Append(dbc dbctx.Context, ev domain.Event) error
	ListByName(dbc dbctx.Context, name string) ([]*models.EventLog, error)
}

type eventLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventLogRepo(db *gorm.DB, baseLog *logger.Logger) EventLogRepo {
	repoLog := baseLog.With("repo", "EventLogRepo")
	return &eventLogRepo{db: db, log: repoLog}
}

func (er *eventLogRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (er *eventLogRepo) Append(dbc dbctx.Context, ev domain.Event) error {
	raw, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	row := &models.EventLog{
		ID:         ev.ID,
		Name:       ev.Name,
		Payload:    datatypes.JSON(raw),
		OccurredAt: ev.OccurredAt,
		CreatedAt:  time.Now().UTC(),
	}
	return er.conn(dbc).Create(row).Error
}

func (er *eventLogRepo) ListByName(dbc dbctx.Context, name string) ([]*models.EventLog, error) {
	var rows []*models.EventLog
	if err := er.conn(dbc).
		Where("name = ?", name).
		Order("occurred_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
