package push

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// FCMSender delivers pushes through Firebase Cloud Messaging.
// Every call is bounded by timeout so a slow FCM backend cannot stall
// a worker for longer than the configured window.
type FCMSender struct {
	client  *messaging.Client
	timeout time.Duration
}

func NewFCMSender(ctx context.Context, credentialsFile string, timeout time.Duration) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("create messaging client: %w", err)
	}

	return &FCMSender{client: client, timeout: timeout}, nil
}

func (s *FCMSender) Send(ctx context.Context, deviceToken string, n *domain.Notification) (*Receipt, error) {
	if deviceToken == "" {
		return nil, fmt.Errorf("device token is empty")
	}

	data := map[string]string{
		"notification_id": n.ID,
		"category":        string(n.Category),
	}
	if n.EventDate != nil {
		data["event_date"] = n.EventDate.Format("2006-01-02")
	}
	if n.EventTime != nil {
		data["event_time"] = *n.EventTime
	}
	if n.Location != nil {
		data["location"] = *n.Location
	}

	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:    "event_reminders",
				DefaultSound: true,
			},
		},
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.client.Send(sendCtx, msg)
	if err != nil {
		return nil, fmt.Errorf("send push: %w", err)
	}
	return &Receipt{MessageID: id}, nil
}

// IsInvalidToken reports whether the error means the device token is
// stale and should be dropped by the user-management collaborator.
func IsInvalidToken(err error) bool {
	return messaging.IsRegistrationTokenNotRegistered(err)
}

var _ Sender = (*FCMSender)(nil)
