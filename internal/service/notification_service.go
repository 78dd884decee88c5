package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/events"
)

// Publisher delivers a JSON payload to a named channel.
type Publisher interface {
	PublishJSON(ctx context.Context, channel string, payload any) error
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, publisher Publisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.logEvent)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.logEvent)
	n.dispatcher.Subscribe(events.EventWorkOrderCreated, n.logEvent)
	n.dispatcher.Subscribe(events.EventWorkOrderStatusChanged, n.logEvent)
	n.dispatcher.Subscribe(events.EventWorkOrderNotificationRequested, n.handleNotificationRequested)
}

func (n *NotificationService) logEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("work_order_id", event.WorkOrderID),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleNotificationRequested(ctx context.Context, event events.Event) error {
	if !n.cfg.Enabled || n.publisher == nil {
		n.logger.Debug("notification dispatch disabled",
			zap.Int64("work_order_id", event.WorkOrderID))
		return nil
	}
	if err := n.publisher.PublishJSON(ctx, n.cfg.Channel, event); err != nil {
		n.logger.Warn("notification dispatch failed",
			zap.Int64("work_order_id", event.WorkOrderID),
			zap.String("channel", n.cfg.Channel),
			zap.Error(err))
		return fmt.Errorf("publish notification: %w", err)
	}
	n.logger.Info("notification dispatched",
		zap.Int64("work_order_id", event.WorkOrderID),
		zap.String("channel", n.cfg.Channel))
	return nil
}
