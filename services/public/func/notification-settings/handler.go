package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"braincraft/internal/notification"
	"braincraft/internal/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger       *logrus.Entry
	envVars      *EnvVars
	settingsRepo utils.NotificationSettingsRepository
}

func NewHandler(logger *logrus.Entry, envVars *EnvVars, settingsRepo utils.NotificationSettingsRepository) (*Handler, error) {
	return &Handler{
		logger:       logger,
		envVars:      envVars,
		settingsRepo: settingsRepo,
	}, nil
}

type UpdateSettingsRequest struct {
	UserID                    string    `json:"userId"`
	Enabled                   *bool     `json:"enabled,omitempty"`
	TimeSlots                 *[]string `json:"timeSlots,omitempty"`
	IdiomNotificationsEnabled *bool     `json:"idiomNotificationsEnabled,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) EventHandler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod {
	case "GET":
		return h.handleGet(req), nil
	case "POST":
		return h.handleUpdate(req), nil
	default:
		return errorResponse(405, "Method not allowed"), nil
	}
}

func (h *Handler) handleGet(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	userID := req.QueryStringParameters["userId"]
	if userID == "" {
		return errorResponse(400, "userId is required")
	}

	settings, err := h.settingsRepo.GetSettings(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get notification settings")
		return errorResponse(500, "Failed to get notification settings")
	}
	return jsonResponse(200, settings)
}

// handleUpdate applies a partial settings update. A slot list containing the
// same time twice after normalization is rejected and nothing is persisted.
func (h *Handler) handleUpdate(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var update UpdateSettingsRequest
	if err := json.Unmarshal([]byte(req.Body), &update); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return errorResponse(400, "Invalid request body")
	}
	if update.UserID == "" {
		return errorResponse(400, "userId is required")
	}

	settings, err := h.settingsRepo.GetSettings(update.UserID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get notification settings")
		return errorResponse(500, "Failed to get notification settings")
	}

	if update.TimeSlots != nil {
		slots, err := notification.ParseTimeSlots(*update.TimeSlots)
		if err != nil {
			var dup *notification.DuplicateSlotError
			if errors.As(err, &dup) {
				return errorResponse(400, fmt.Sprintf("同じ時刻が重複しています: %s", dup.Slot))
			}
			return errorResponse(400, "Invalid time slots")
		}
		if len(slots) > 0 {
			settings.TimeSlots = slots
		}
	}
	if update.Enabled != nil {
		settings.Enabled = *update.Enabled
	}
	if update.IdiomNotificationsEnabled != nil {
		settings.IdiomNotificationsEnabled = *update.IdiomNotificationsEnabled
	}

	if err := h.settingsRepo.SetSettings(update.UserID, settings); err != nil {
		h.logger.WithError(err).Error("Failed to save notification settings")
		return errorResponse(500, "Failed to save notification settings")
	}
	return jsonResponse(200, settings)
}

func jsonResponse(statusCode int, payload interface{}) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(payload)
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(body),
	}
}

func errorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	return jsonResponse(statusCode, ErrorResponse{Error: message})
}
