package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"braincraft/internal/models"
	"braincraft/internal/notification"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

type stubWordRepo struct {
	words map[string][]models.Word
}

func (s *stubWordRepo) ListWords(userID string) ([]models.Word, error) {
	return s.words[userID], nil
}

func (s *stubWordRepo) AddWord(userID string, word models.Word) (*models.Word, error) {
	return nil, errors.New("not implemented")
}

func (s *stubWordRepo) UpdateWord(userID, wordID string, updates models.WordUpdate) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *stubWordRepo) DeleteWord(userID, wordID string) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *stubWordRepo) MarkWordLearned(userID, wordID string) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *stubWordRepo) ListNames(userID string) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (s *stubWordRepo) RenameList(userID, oldName, newName string) (int, error) {
	return 0, errors.New("not implemented")
}

func (s *stubWordRepo) DeleteList(userID, listName string) (int, error) {
	return 0, errors.New("not implemented")
}

type stubSettingsRepo struct {
	settings map[string]models.NotificationSettings
}

func (s *stubSettingsRepo) GetSettings(userID string) (models.NotificationSettings, error) {
	if settings, ok := s.settings[userID]; ok {
		return settings, nil
	}
	return models.DefaultNotificationSettings(), nil
}

func (s *stubSettingsRepo) SetSettings(userID string, settings models.NotificationSettings) error {
	s.settings[userID] = settings
	return nil
}

func (s *stubSettingsRepo) ListUserIDs() ([]string, error) {
	ids := make([]string, 0, len(s.settings))
	for id := range s.settings {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *stubSettingsRepo) MarkSent(userID, date, slot string) error {
	settings, _ := s.GetSettings(userID)
	if settings.LastSentDate != date {
		settings.LastSentDate = date
		settings.LastSentTimeSlots = nil
	}
	settings.LastSentTimeSlots = append(settings.LastSentTimeSlots, slot)
	return s.SetSettings(userID, settings)
}

type stubListSettingsRepo struct{}

func (s *stubListSettingsRepo) GetNotificationMap(userID string, listNames []string) (map[string]bool, error) {
	result := make(map[string]bool, len(listNames))
	for _, name := range listNames {
		result[name] = true
	}
	return result, nil
}

func (s *stubListSettingsRepo) SetNotificationEnabled(userID, listName string, enabled bool) error {
	return nil
}

func (s *stubListSettingsRepo) RenameList(userID, oldName, newName string) error { return nil }
func (s *stubListSettingsRepo) DeleteList(userID, listName string) error         { return nil }

type stubBot struct {
	pushed int
}

func (s *stubBot) PushMessage(userID string, message string) error {
	s.pushed++
	return nil
}

func newTestHandler(t *testing.T, cronSecret string) (*Handler, *stubBot) {
	t.Helper()
	bot := &stubBot{}
	dispatcher := notification.NewDispatcher(
		testLogger(),
		&stubWordRepo{words: map[string][]models.Word{
			"U1": {{ID: "1", Word: "resilience"}},
		}},
		&stubSettingsRepo{settings: map[string]models.NotificationSettings{
			"U1": {
				Enabled:                   true,
				TimeSlots:                 []string{"08:00"},
				IdiomNotificationsEnabled: true,
			},
		}},
		&stubListSettingsRepo{},
		bot,
	)

	handler, err := NewHandler(testLogger(), &EnvVars{cronSecret: cronSecret}, dispatcher)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}
	handler.now = func() time.Time {
		return time.Date(2026, 2, 16, 8, 0, 0, 0, notification.Zone)
	}
	return handler, bot
}

func TestEventHandlerAuth(t *testing.T) {
	t.Run("Rejects a missing bearer token", func(t *testing.T) {
		handler, bot := newTestHandler(t, "s3cret")
		resp, err := handler.EventHandler(context.Background(), events.APIGatewayProxyRequest{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
		if bot.pushed != 0 {
			t.Errorf("Expected no pushes, got %d", bot.pushed)
		}
	})

	t.Run("Accepts the configured bearer token", func(t *testing.T) {
		handler, _ := newTestHandler(t, "s3cret")
		resp, err := handler.EventHandler(context.Background(), events.APIGatewayProxyRequest{
			Headers: map[string]string{"Authorization": "Bearer s3cret"},
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("No configured secret means open endpoint", func(t *testing.T) {
		handler, _ := newTestHandler(t, "")
		resp, err := handler.EventHandler(context.Background(), events.APIGatewayProxyRequest{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("Expected 200, got %d", resp.StatusCode)
		}
	})
}

func TestEventHandlerSummary(t *testing.T) {
	handler, bot := newTestHandler(t, "")

	resp, err := handler.EventHandler(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var result notification.TickResult
	if err := json.Unmarshal([]byte(resp.Body), &result); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
	if result.Sent != 1 || len(result.Results) != 1 {
		t.Errorf("Unexpected summary: %+v", result)
	}
	if result.Results[0].UserID != "U1" || !result.Results[0].OK {
		t.Errorf("Unexpected per-user result: %+v", result.Results[0])
	}
	if bot.pushed != 1 {
		t.Errorf("Expected one push, got %d", bot.pushed)
	}
}
