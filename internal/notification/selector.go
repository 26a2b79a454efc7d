package notification

import (
	"fmt"

	"braincraft/internal/utils"

	"github.com/sirupsen/logrus"
)

// Selector decides which users are due a reminder at a given wall-clock time.
type Selector struct {
	logger       *logrus.Entry
	settingsRepo utils.NotificationSettingsRepository
}

func NewSelector(logger *logrus.Entry, settingsRepo utils.NotificationSettingsRepository) *Selector {
	return &Selector{
		logger:       logger,
		settingsRepo: settingsRepo,
	}
}

// EligibleUsers returns every user whose settings are enabled, whose slots
// contain the current "HH:mm" in the notification zone, and who has not
// already been sent that slot today. Stored slots are re-normalized before
// comparison; slots that fail normalization never match. No ordering is
// guaranteed.
func (s *Selector) EligibleUsers(nowHour, nowMinute int, today string) ([]string, error) {
	nowStr := fmt.Sprintf("%02d:%02d", nowHour, nowMinute)

	userIDs, err := s.settingsRepo.ListUserIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list users with settings: %w", err)
	}

	var eligible []string
	for _, userID := range userIDs {
		settings, err := s.settingsRepo.GetSettings(userID)
		if err != nil {
			// Skip this user; the next tick retries them.
			s.logger.WithError(err).WithField("userId", userID).Warn("Failed to load settings, skipping user")
			continue
		}
		if !settings.Enabled {
			continue
		}
		matched := false
		for _, slot := range settings.TimeSlots {
			if normalized, ok := NormalizeTimeSlot(slot); ok && normalized == nowStr {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if settings.SentFor(today, nowStr) {
			continue
		}
		eligible = append(eligible, userID)
	}
	return eligible, nil
}
