package worker

import (
	"context"
	"time"

	"github.com/ds124wfegd/eventhub/internal/service"

	"github.com/sirupsen/logrus"
)

// EventDeactivationWorker periodically clears the is_active flag on events
// whose end date has passed.
type EventDeactivationWorker struct {
	eventService service.EventService
	interval     time.Duration
}

func NewEventDeactivationWorker(eventService service.EventService, interval time.Duration) *EventDeactivationWorker {
	return &EventDeactivationWorker{
		eventService: eventService,
		interval:     interval,
	}
}

func (w *EventDeactivationWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Event deactivation worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Event deactivation worker stopped")
			return
		case <-ticker.C:
			w.deactivatePastEvents(ctx)
		}
	}
}

func (w *EventDeactivationWorker) deactivatePastEvents(ctx context.Context) {
	count, err := w.eventService.DeactivatePastEvents(ctx)
	if err != nil {
		logrus.Errorf("Failed to deactivate past events: %v", err)
		return
	}

	if count > 0 {
		logrus.Infof("Deactivated %d past events", count)
	}
}
