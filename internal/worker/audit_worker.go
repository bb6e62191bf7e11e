package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/medisphere/care-service/internal/events"
)

// StartAuditWorker subscribes a structured audit log to auth events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")

	record := func(_ context.Context, event events.Event) error {
		audit.Info("auth event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("subject", event.Subject),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventPatientRegistered,
		events.EventAppointmentCreated,
	} {
		dispatcher.Subscribe(eventType, record)
	}
}
