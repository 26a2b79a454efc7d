package main

import (
	"context"
	"encoding/json"
	"strings"

	"braincraft/internal/models"
	"braincraft/internal/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger           *logrus.Entry
	envVars          *EnvVars
	wordRepo         utils.WordRepository
	listSettingsRepo utils.ListSettingsRepository
}

func NewHandler(logger *logrus.Entry, envVars *EnvVars, wordRepo utils.WordRepository, listSettingsRepo utils.ListSettingsRepository) (*Handler, error) {
	return &Handler{
		logger:           logger,
		envVars:          envVars,
		wordRepo:         wordRepo,
		listSettingsRepo: listSettingsRepo,
	}, nil
}

type ListInfo struct {
	Name                  string `json:"name"`
	IsNotificationEnabled bool   `json:"isNotificationEnabled"`
}

type ToggleListRequest struct {
	UserID                string `json:"userId"`
	ListName              string `json:"listName"`
	IsNotificationEnabled bool   `json:"isNotificationEnabled"`
}

type RenameListRequest struct {
	UserID  string `json:"userId"`
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) EventHandler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod {
	case "GET":
		return h.handleList(req), nil
	case "POST":
		return h.handleToggle(req), nil
	case "PUT":
		return h.handleRename(req), nil
	case "DELETE":
		return h.handleDelete(req), nil
	default:
		return errorResponse(405, "Method not allowed"), nil
	}
}

func (h *Handler) handleList(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	userID := req.QueryStringParameters["userId"]
	if userID == "" {
		return errorResponse(400, "userId is required")
	}

	names, err := h.wordRepo.ListNames(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list names")
		return errorResponse(500, "Failed to list names")
	}

	prefs, err := h.listSettingsRepo.GetNotificationMap(userID, names)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load list settings")
		return errorResponse(500, "Failed to load list settings")
	}

	lists := make([]ListInfo, 0, len(names))
	for _, name := range names {
		enabled, ok := prefs[name]
		if !ok {
			enabled = true
		}
		lists = append(lists, ListInfo{Name: name, IsNotificationEnabled: enabled})
	}
	return jsonResponse(200, lists)
}

// handleToggle flips a list's notification setting. The words in the list are
// untouched; an opted-out list is only excluded from reminder assembly.
func (h *Handler) handleToggle(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var request ToggleListRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return errorResponse(400, "Invalid request body")
	}
	if request.UserID == "" || request.ListName == "" {
		return errorResponse(400, "userId and listName are required")
	}

	if err := h.listSettingsRepo.SetNotificationEnabled(request.UserID, request.ListName, request.IsNotificationEnabled); err != nil {
		h.logger.WithError(err).Error("Failed to save list setting")
		return errorResponse(500, "Failed to save list setting")
	}
	return jsonResponse(200, map[string]bool{"success": true})
}

func (h *Handler) handleRename(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var request RenameListRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return errorResponse(400, "Invalid request body")
	}
	if request.UserID == "" || request.OldName == "" || strings.TrimSpace(request.NewName) == "" {
		return errorResponse(400, "userId, oldName and newName are required")
	}
	if request.OldName == models.DefaultListName {
		return errorResponse(400, "デフォルトのリストは変更できません")
	}

	count, err := h.wordRepo.RenameList(request.UserID, request.OldName, request.NewName)
	if err != nil {
		h.logger.WithError(err).Error("Failed to rename list")
		return errorResponse(500, "Failed to rename list")
	}
	if err := h.listSettingsRepo.RenameList(request.UserID, request.OldName, models.NormalizeListName(request.NewName)); err != nil {
		h.logger.WithError(err).Error("Failed to migrate list setting")
		return errorResponse(500, "Failed to migrate list setting")
	}

	return jsonResponse(200, map[string]int{"updated": count})
}

// handleDelete removes the list: its words move back to the default list and
// its notification setting is dropped.
func (h *Handler) handleDelete(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	userID := req.QueryStringParameters["userId"]
	listName := req.QueryStringParameters["name"]
	if userID == "" || listName == "" {
		return errorResponse(400, "userId and name are required")
	}
	if listName == models.DefaultListName {
		return errorResponse(400, "デフォルトのリストは削除できません")
	}

	count, err := h.wordRepo.DeleteList(userID, listName)
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete list")
		return errorResponse(500, "Failed to delete list")
	}
	if err := h.listSettingsRepo.DeleteList(userID, listName); err != nil {
		h.logger.WithError(err).Error("Failed to delete list setting")
		return errorResponse(500, "Failed to delete list setting")
	}

	return jsonResponse(200, map[string]int{"moved": count})
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
