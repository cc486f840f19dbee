// internal/infra/push/fcm_client.go
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	domainpush "scan_review_notifier/internal/domain/push"
)

// FCMAdapter implements the push.Client interface on top of Firebase Cloud
// Messaging. One batched multicast call per send; per-token outcomes come
// back in the batch response, so an expired device never fails the batch.
type FCMAdapter struct {
	client *messaging.Client
}

// NewFCMAdapter initializes the Firebase app and its messaging client.
// With an empty credentialsFile the SDK falls back to application default
// credentials, which is how the service runs inside GCP.
func NewFCMAdapter(ctx context.Context, credentialsFile string) (*FCMAdapter, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm messaging client: %w", err)
	}
	return &FCMAdapter{client: client}, nil
}

// SendMulticast delivers the message to all tokens in one batch and maps the
// FCM response onto the transport-neutral BatchResult. Tokens FCM reports as
// unregistered are surfaced as StaleTokens for cleanup.
func (a *FCMAdapter) SendMulticast(ctx context.Context, tokens []string, msg domainpush.Message) (domainpush.BatchResult, error) {
	if len(tokens) == 0 {
		return domainpush.BatchResult{}, nil
	}

	resp, err := a.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		return domainpush.BatchResult{}, fmt.Errorf("fcm multicast send failed: %w", err)
	}

	result := domainpush.BatchResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}
	for i, r := range resp.Responses {
		if r.Error != nil && messaging.IsUnregistered(r.Error) {
			result.StaleTokens = append(result.StaleTokens, tokens[i])
		}
	}
	return result, nil
}
