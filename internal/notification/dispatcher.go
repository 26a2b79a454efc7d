package notification

import (
	"time"

	"braincraft/internal/models"
	"braincraft/internal/utils"

	"github.com/sirupsen/logrus"
)

// UserResult is the per-user outcome of one tick.
type UserResult struct {
	UserID string `json:"userId"`
	OK     bool   `json:"ok"`
}

// TickResult summarizes one dispatch tick for the caller.
type TickResult struct {
	Sent    int          `json:"sent"`
	Results []UserResult `json:"results"`
}

// Dispatcher runs one reminder tick: select eligible users, build each user's
// message, push it, and record the slot as sent. Failures are isolated per
// user; a tick never aborts because one push was rejected.
type Dispatcher struct {
	logger           *logrus.Entry
	selector         *Selector
	wordRepo         utils.WordRepository
	settingsRepo     utils.NotificationSettingsRepository
	listSettingsRepo utils.ListSettingsRepository
	botClient        utils.LinebotAPI
}

func NewDispatcher(logger *logrus.Entry, wordRepo utils.WordRepository, settingsRepo utils.NotificationSettingsRepository, listSettingsRepo utils.ListSettingsRepository, botClient utils.LinebotAPI) *Dispatcher {
	return &Dispatcher{
		logger:           logger,
		selector:         NewSelector(logger, settingsRepo),
		wordRepo:         wordRepo,
		settingsRepo:     settingsRepo,
		listSettingsRepo: listSettingsRepo,
		botClient:        botClient,
	}
}

// Dispatch processes one scheduler tick at the given instant. The instant is
// converted to the notification zone before any slot or date arithmetic.
func (d *Dispatcher) Dispatch(now time.Time) (*TickResult, error) {
	local := now.In(Zone)
	slot := SlotOf(local)
	today := DateOf(local)

	userIDs, err := d.selector.EligibleUsers(local.Hour(), local.Minute(), today)
	if err != nil {
		return nil, err
	}

	result := &TickResult{Results: []UserResult{}}
	for _, userID := range userIDs {
		ok := d.processUser(userID, today, slot)
		result.Results = append(result.Results, UserResult{UserID: userID, OK: ok})
	}
	result.Sent = len(result.Results)

	d.logger.WithFields(logrus.Fields{
		"slot":  slot,
		"date":  today,
		"users": result.Sent,
	}).Info("Reminder tick finished")
	return result, nil
}

func (d *Dispatcher) processUser(userID, today, slot string) bool {
	logger := d.logger.WithFields(logrus.Fields{"userId": userID, "slot": slot})

	words, err := d.wordRepo.ListWords(userID)
	if err != nil {
		logger.WithError(err).Error("Failed to load words")
		return false
	}

	listNames := distinctListNames(words)
	listPrefs, err := d.listSettingsRepo.GetNotificationMap(userID, listNames)
	if err != nil {
		logger.WithError(err).Error("Failed to load list settings")
		return false
	}

	settings, err := d.settingsRepo.GetSettings(userID)
	if err != nil {
		logger.WithError(err).Error("Failed to load notification settings")
		return false
	}

	text := BuildMessage(words, listPrefs, settings.IdiomNotificationsEnabled)
	if text != "" {
		if err := d.botClient.PushMessage(userID, text); err != nil {
			// Not marked as sent, so the next eligible tick retries.
			logger.WithError(err).Error("Failed to push reminder message")
			return false
		}
	} else {
		logger.Info("No words to send, marking slot as sent")
	}

	if err := d.settingsRepo.MarkSent(userID, today, slot); err != nil {
		// The push already happened; failing the user here would cause a
		// duplicate next tick, which is worse than a stale bookkeeping row.
		logger.WithError(err).Error("Failed to record sent slot")
	}
	return true
}

func distinctListNames(words []models.Word) []string {
	seen := make(map[string]struct{}, len(words))
	var names []string
	for _, w := range words {
		name := models.NormalizeListName(w.ListName)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
