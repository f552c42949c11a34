package notification

import (
	"context"
	"errors"
	"testing"

	"shiffy/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "projects/p/messages/1", nil
}

func TestNotifySchedulePublished(t *testing.T) {
	sender := &fakeSender{}
	svc := NewDefaultNotificationService(sender, zap.NewNop())

	err := svc.NotifySchedulePublished(context.Background(), &models.Schedule{
		ID: "s1", ShopID: "shop 42", WeekStart: "2025-10-20",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "shop_shop_42", msg.Topic)
	assert.Equal(t, "2025-10-20", msg.Data["week_start"])
	assert.Contains(t, msg.Notification.Body, "2025-10-20")
}

func TestNotifySchedulePublishedWithoutSender(t *testing.T) {
	svc := NewDefaultNotificationService(nil, zap.NewNop())
	assert.NoError(t, svc.NotifySchedulePublished(context.Background(), &models.Schedule{ShopID: "x"}))
}

func TestNotifySchedulePublishedSendError(t *testing.T) {
	svc := NewDefaultNotificationService(&fakeSender{err: errors.New("quota")}, zap.NewNop())
	err := svc.NotifySchedulePublished(context.Background(), &models.Schedule{ShopID: "x"})
	assert.ErrorContains(t, err, "quota")
}
