package service

import (
	"context"

	"ai-coaching-be/internal/pkg/logger"
	"ai-coaching-be/pkg/events"
	pktNats "ai-coaching-be/pkg/nats"
)

type IMonitorService interface {
	Start() error
}

// monitorService tails the agent event stream and mirrors every dispatched
// event into the structured log. It is a read-only observer; the audit
// table written by the dispatcher stays the source of truth.
type monitorService struct {
	subscriber *pktNats.Subscriber
	sysLogger  logger.ILogger
}

func NewMonitorService(subscriber *pktNats.Subscriber, sysLogger logger.ILogger) IMonitorService {
	return &monitorService{
		subscriber: subscriber,
		sysLogger:  sysLogger,
	}
}

func (m *monitorService) Start() error {
	if m.subscriber == nil {
		m.sysLogger.Warn("monitor", "NATS subscriber unavailable, agent event monitoring disabled", nil)
		return nil
	}

	return m.subscriber.Subscribe("coach.events.>", "coach-event-monitor", func(_ context.Context, event events.Event) error {
		m.sysLogger.Info("monitor", "agent event", map[string]interface{}{
			"type":    event.EventType(),
			"payload": event.Payload(),
		})
		return nil
	})
}
