package notification

import (
	"context"
	"fmt"
	"regexp"

	"shiffy/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender is the subset of *messaging.Client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	NotifySchedulePublished(ctx context.Context, schedule *models.Schedule) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	sender Sender
	logger *zap.Logger
}

// NewDefaultNotificationService accepts a nil sender; pushes are then skipped.
func NewDefaultNotificationService(sender Sender, logger *zap.Logger) *DefaultNotificationService {
	return &DefaultNotificationService{sender: sender, logger: logger}
}

var topicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9\-_.~%]`)

// ShopTopic is the FCM topic every device of a shop subscribes to.
func ShopTopic(shopID string) string {
	return "shop_" + topicUnsafe.ReplaceAllString(shopID, "_")
}

// NotifySchedulePublished pushes a "schedule ready" message to the shop topic.
func (s *DefaultNotificationService) NotifySchedulePublished(ctx context.Context, schedule *models.Schedule) error {
	if s.sender == nil {
		s.logger.Debug("Push disabled, skipping publish notification",
			zap.String("shopId", schedule.ShopID),
			zap.String("weekStart", schedule.WeekStart),
		)
		return nil
	}

	msg := &messaging.Message{
		Topic: ShopTopic(schedule.ShopID),
		Notification: &messaging.Notification{
			Title: "New schedule published",
			Body:  fmt.Sprintf("The schedule for the week of %s is ready.", schedule.WeekStart),
		},
		Data: map[string]string{
			"type":       "schedule_published",
			"scheduleId": schedule.ID,
			"week_start": schedule.WeekStart,
		},
	}

	response, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("NotifySchedulePublished: failed to send FCM message: %w", err)
	}

	s.logger.Info("Sent publish notification",
		zap.String("shopId", schedule.ShopID),
		zap.String("weekStart", schedule.WeekStart),
		zap.String("messageId", response),
	)
	return nil
}
