package fcm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/juvoapp/juvo-backend/pkg/config"
	"github.com/juvoapp/juvo-backend/pkg/logger"
)

// Message is a single push payload addressed to one device token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Client wraps the Firebase Cloud Messaging sender.
type Client struct {
	client *messaging.Client
	logg   *logger.Logger
}

// New builds an FCM client from config. Credentials may come from a service
// account file or a base64-encoded JSON blob for containerized deployments.
func New(ctx context.Context, cfg config.FCMConfig, logg *logger.Logger) (*Client, error) {
	opt, err := credentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting messaging client: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "fcm client initialized")
	}

	return &Client{client: client, logg: logg}, nil
}

func credentialsOption(cfg config.FCMConfig) (option.ClientOption, error) {
	switch {
	case cfg.CredentialsFile != "":
		return option.WithCredentialsFile(cfg.CredentialsFile), nil
	case cfg.CredentialsBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decoding fcm credentials: %w", err)
		}
		return option.WithCredentialsJSON(raw), nil
	default:
		return nil, errors.New("fcm credentials file or base64 blob is required")
	}
}

// Send delivers a single push message to the token in msg.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.client == nil {
		return errors.New("fcm client not initialized")
	}
	if msg.Token == "" {
		return errors.New("push token is required")
	}

	out := &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}

	id, err := c.client.Send(ctx, out)
	if err != nil {
		return fmt.Errorf("sending fcm message: %w", err)
	}
	if c.logg != nil {
		c.logg.Debug(c.logg.WithField(ctx, "fcm_message_id", id), "fcm message delivered")
	}
	return nil
}
