package push

import "context"

// Message is a transport-neutral push notification: a human-readable
// title/body pair plus a typed data map the client app routes on.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// BatchResult reports per-recipient outcomes of one multicast send. Partial
// failure is the expected steady state; it never fails the batch as a whole.
type BatchResult struct {
	SuccessCount int
	FailureCount int

	// StaleTokens are delivery addresses the transport reported as no longer
	// registered (uninstalled app, rotated token). Safe to purge.
	StaleTokens []string
}

// Client defines an interface for delivering push notifications to device
// tokens. It decouples the application logic from the messaging SDK.
type Client interface {
	// SendMulticast delivers msg to every token in one batched call and
	// reports per-token outcomes. An empty token list yields a zero result
	// without any network I/O. The returned error is reserved for failures
	// of the batch call itself, not of individual recipients.
	SendMulticast(ctx context.Context, tokens []string, msg Message) (BatchResult, error)
}
