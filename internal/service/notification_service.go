package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/meiway/mailplus-crm/internal/config"
	"github.com/meiway/mailplus-crm/internal/events"
)

// NotificationService records would-be deliveries for domain events. No real
// email or SMS is sent; outreach is tracked, not delivered.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMailItemLogged, n.handleMailItemLogged)
	n.dispatcher.Subscribe(events.EventMailItemStatusChanged, n.handleMailItemStatusChanged)
	n.dispatcher.Subscribe(events.EventMessageLogged, n.handleMessageLogged)
	n.dispatcher.Subscribe(events.EventMessageResponded, n.handleMessageResponded)
}

func (n *NotificationService) handleMailItemLogged(ctx context.Context, event events.Event) error {
	n.logger.Info("MailItemLogged", zap.String("owner_id", event.OwnerID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleMailItemStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("MailItemStatusChanged", zap.String("owner_id", event.OwnerID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMessageLogged(ctx context.Context, event events.Event) error {
	n.logger.Info("MessageLogged", zap.String("owner_id", event.OwnerID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMessageResponded(ctx context.Context, event events.Event) error {
	n.logger.Info("MessageResponded", zap.String("owner_id", event.OwnerID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("owner_id", event.OwnerID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("owner_id", event.OwnerID),
		zap.String("event_type", string(event.Type)))
}
