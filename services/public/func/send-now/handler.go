package main

import (
	"context"
	"encoding/json"

	"braincraft/internal/models"
	"braincraft/internal/notification"
	"braincraft/internal/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger           *logrus.Entry
	envVars          *EnvVars
	wordRepo         utils.WordRepository
	settingsRepo     utils.NotificationSettingsRepository
	listSettingsRepo utils.ListSettingsRepository
	botClient        utils.LinebotAPI
}

func NewHandler(logger *logrus.Entry, envVars *EnvVars, wordRepo utils.WordRepository, settingsRepo utils.NotificationSettingsRepository, listSettingsRepo utils.ListSettingsRepository, botClient utils.LinebotAPI) (*Handler, error) {
	return &Handler{
		logger:           logger,
		envVars:          envVars,
		wordRepo:         wordRepo,
		settingsRepo:     settingsRepo,
		listSettingsRepo: listSettingsRepo,
		botClient:        botClient,
	}, nil
}

type SendNowRequest struct {
	UserID string `json:"userId"`
}

type SendNowResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EventHandler pushes the user's reminder immediately, with the same list and
// idiom filtering the scheduled tick applies. Sent-tracking is not touched;
// a manual push never consumes a scheduled slot.
func (h *Handler) EventHandler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var request SendNowRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return response(400, SendNowResponse{Error: "Invalid request body"}), nil
	}
	if request.UserID == "" {
		return response(400, SendNowResponse{Error: "userId is required"}), nil
	}

	words, err := h.wordRepo.ListWords(request.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load words")
		return response(500, SendNowResponse{Error: "Failed to load words"}), nil
	}

	listNames := make([]string, 0, len(words))
	seen := map[string]struct{}{}
	for _, w := range words {
		name := models.NormalizeListName(w.ListName)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		listNames = append(listNames, name)
	}

	listPrefs, err := h.listSettingsRepo.GetNotificationMap(request.UserID, listNames)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load list settings")
		return response(500, SendNowResponse{Error: "Failed to load list settings"}), nil
	}

	settings, err := h.settingsRepo.GetSettings(request.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load notification settings")
		return response(500, SendNowResponse{Error: "Failed to load notification settings"}), nil
	}

	text := notification.BuildMessage(words, listPrefs, settings.IdiomNotificationsEnabled)
	if text == "" {
		if len(words) > 0 {
			return response(400, SendNowResponse{Error: "通知ONのリストに単語がありません。設定でリストの通知をONにしてください。"}), nil
		}
		return response(400, SendNowResponse{Error: "登録された単語がありません"}), nil
	}

	if err := h.botClient.PushMessage(request.UserID, text); err != nil {
		h.logger.WithError(err).Error("Failed to push message")
		return response(500, SendNowResponse{Error: "送信に失敗しました"}), nil
	}

	h.logger.WithField("userId", request.UserID).Info("Successfully sent manual reminder")
	return response(200, SendNowResponse{Success: true}), nil
}

func response(statusCode int, payload SendNowResponse) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(payload)
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(body),
	}
}
