package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selection-crew/selection-service/internal/events"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestShortlistBody_SubstitutesPlaceholders(t *testing.T) {
	body := ShortlistBody("https://drive.example.com/folder", "2026-09-04")

	assert.Contains(t, body, "https://drive.example.com/folder")
	assert.Contains(t, body, "Deadline: 2026-09-04")
	assert.NotContains(t, body, "{drive_link}")
	assert.NotContains(t, body, "{deadline}")
}

func TestEventNotifier_PublishesEmailEvent(t *testing.T) {
	publisher := events.NewMockEventPublisher(testLogger())
	notifier := NewEventNotifier(publisher, events.EventShortlistNotification, testLogger())

	err := notifier.Send(context.Background(), Message{
		StudentID: "STU001",
		To:        "asha@example.com",
		Subject:   ShortlistSubject,
		Body:      ShortlistBody("https://drive.example.com", "2026-09-04"),
	})
	require.NoError(t, err)

	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventShortlistNotification, published[0].Type)
	assert.Equal(t, "selection-service", published[0].Source)

	// Payload survives the JSON round trip downstream consumers rely on.
	raw, err := json.Marshal(published[0].Data)
	require.NoError(t, err)
	var payload events.EmailNotificationEvent
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "asha@example.com", payload.To)
	assert.Equal(t, "STU001", payload.StudentID)
}

func TestEventNotifier_PublishFailure(t *testing.T) {
	publisher := events.NewMockEventPublisher(testLogger())
	publisher.FailAll = true
	notifier := NewEventNotifier(publisher, events.EventFinalSelectionNotification, testLogger())

	err := notifier.Send(context.Background(), Message{To: "ben@example.com"})
	assert.Error(t, err)
}

func TestMockNotifier_PartialFailure(t *testing.T) {
	notifier := NewMockNotifier()
	notifier.FailFor["bad@example.com"] = true

	require.NoError(t, notifier.Send(context.Background(), Message{To: "ok@example.com"}))
	assert.Error(t, notifier.Send(context.Background(), Message{To: "bad@example.com"}))

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ok@example.com", sent[0].To)
}
