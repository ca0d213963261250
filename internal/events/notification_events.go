package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType identifies the kind of notification event on the wire.
type EventType string

const (
	EventShortlistNotification      EventType = "selection.shortlist.notification"
	EventFinalSelectionNotification EventType = "selection.final.notification"
)

const (
	eventSource  = "selection-service"
	eventVersion = "1.0"
)

// NotificationEvent is the envelope published for every outgoing
// notification. A downstream notification service owns actual delivery;
// this service only records the intent.
type NotificationEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// EmailNotificationEvent is the payload for a single-recipient email.
type EmailNotificationEvent struct {
	StudentID string `json:"student_id,omitempty"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// NewEmailNotificationEvent builds a ready-to-publish envelope for one
// recipient.
func NewEmailNotificationEvent(eventType EventType, studentID, to, subject, body string) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data: EmailNotificationEvent{
			StudentID: studentID,
			To:        to,
			Subject:   subject,
			Body:      body,
		},
	}
}

// GenerateEventID returns a unique event identifier.
func GenerateEventID() string {
	return watermill.NewUUID()
}
