package audit

import (
	"context"

	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/repos/eventlog"
	"github.com/yungbote/onboarding-backend/internal/domain"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

// Recorder is a catch-all event bus subscriber that appends every published
// domain event to the event_log table.
type Recorder struct {
	repo eventlog.EventLogRepo
	log  *logger.Logger
}

func NewRecorder(repo eventlog.EventLogRepo, baseLog *logger.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		log:  baseLog.With("subscriber", "audit"),
	}
}

// Subscribe attaches the recorder to all event names.
func (r *Recorder) Subscribe(events *cqrs.EventBus) {
	events.Subscribe("", cqrs.SubscriberFunc(r.HandleEvent))
}

func (r *Recorder) HandleEvent(ctx context.Context, ev domain.Event) error {
	if err := r.repo.Append(dbctx.Context{Ctx: ctx}, ev); err != nil {
		// Audit writes must not fail the publishing command.
		r.log.Error("Failed to append event log row", "event_id", ev.ID, "event", ev.Name, "error", err)
	}
	return nil
}
