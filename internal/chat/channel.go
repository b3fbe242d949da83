package chat

import "context"

// Channel is the outbound half of the messaging platform. The router only
// talks to this interface; tests drive it with a recording fake.
type Channel interface {
	Send(ctx context.Context, chatID int64, reply Reply) error

	// AnswerCallback acknowledges a button press so the client stops
	// showing a spinner. A best-effort call.
	AnswerCallback(ctx context.Context, callbackID string) error
}
