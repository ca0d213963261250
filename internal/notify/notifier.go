package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/selection-crew/selection-service/internal/events"
)

// Message is one outgoing email.
type Message struct {
	StudentID string
	To        string
	Subject   string
	Body      string
}

// Notifier delivers a message to a single recipient. Implementations must
// treat each send independently; a failure for one recipient must not affect
// others.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// EventNotifier publishes each message as a notification event instead of
// talking to a mail server. The downstream notification service owns SMTP.
type EventNotifier struct {
	publisher events.EventPublisher
	eventType events.EventType
	logger    *slog.Logger
}

func NewEventNotifier(publisher events.EventPublisher, eventType events.EventType, logger *slog.Logger) *EventNotifier {
	return &EventNotifier{
		publisher: publisher,
		eventType: eventType,
		logger:    logger,
	}
}

func (n *EventNotifier) Send(ctx context.Context, msg Message) error {
	event := events.NewEmailNotificationEvent(n.eventType, msg.StudentID, msg.To, msg.Subject, msg.Body)
	if err := n.publisher.PublishNotificationEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to queue notification for %s: %w", msg.To, err)
	}

	n.logger.Info("Queued notification",
		"to", msg.To,
		"student_id", msg.StudentID,
		"event_type", n.eventType)
	return nil
}

// MockNotifier records messages for tests. Addresses in FailFor reject the
// send, which lets tests exercise partial-failure handling.
type MockNotifier struct {
	mu      sync.Mutex
	sent    []Message
	FailFor map[string]bool
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{FailFor: make(map[string]bool)}
}

func (m *MockNotifier) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailFor[msg.To] {
		return fmt.Errorf("mock notifier: delivery to %s refused", msg.To)
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of every successfully delivered message.
func (m *MockNotifier) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
