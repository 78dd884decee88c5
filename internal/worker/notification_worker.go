package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/service"
)

// StartNotificationWorker registers notification handlers on the event
// dispatcher so work order notifications are published as they are requested.
func StartNotificationWorker(notificationService *service.NotificationService, cfg config.NotificationConfig, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification worker started",
		zap.Bool("dispatch_enabled", cfg.Enabled),
		zap.String("channel", cfg.Channel))
}
