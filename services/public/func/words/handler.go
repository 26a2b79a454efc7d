package main

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"braincraft/internal/models"
	"braincraft/internal/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger   *logrus.Entry
	envVars  *EnvVars
	wordRepo utils.WordRepository
}

func NewHandler(logger *logrus.Entry, envVars *EnvVars, wordRepo utils.WordRepository) (*Handler, error) {
	return &Handler{
		logger:   logger,
		envVars:  envVars,
		wordRepo: wordRepo,
	}, nil
}

type RegisterWordRequest struct {
	UserID   string `json:"userId"`
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Example  string `json:"example"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	ListName string `json:"listName"`
	Type     string `json:"type"`
}

type UpdateWordRequest struct {
	UserID string            `json:"userId"`
	ID     string            `json:"id"`
	Update models.WordUpdate `json:"update"`
}

type WordRefRequest struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) EventHandler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch {
	case req.HTTPMethod == "POST" && strings.HasSuffix(req.Path, "/learn"):
		return h.handleLearn(req), nil
	case req.HTTPMethod == "POST":
		return h.handleRegister(req), nil
	case req.HTTPMethod == "GET":
		return h.handleList(req), nil
	case req.HTTPMethod == "PUT":
		return h.handleUpdate(req), nil
	case req.HTTPMethod == "DELETE":
		return h.handleDelete(req), nil
	default:
		return errorResponse(405, "Method not allowed"), nil
	}
}

func (h *Handler) handleRegister(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var request RegisterWordRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return errorResponse(400, "Invalid request body")
	}
	if request.UserID == "" {
		return errorResponse(400, "userId is required")
	}
	if strings.TrimSpace(request.Word) == "" {
		return errorResponse(400, "単語を入力してください")
	}

	wordType := models.WordTypeWord
	if request.Type == string(models.WordTypeIdiom) {
		wordType = models.WordTypeIdiom
	}

	word, err := h.wordRepo.AddWord(request.UserID, models.Word{
		Word:     strings.TrimSpace(request.Word),
		Meaning:  request.Meaning,
		Example:  request.Example,
		Question: request.Question,
		Answer:   request.Answer,
		ListName: request.ListName,
		Type:     wordType,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to register word")
		return errorResponse(500, "Failed to register word")
	}
	return jsonResponse(200, word)
}

// handleList returns the collection newest-first; with learned=true it
// returns only learned words, most recently learned first.
func (h *Handler) handleList(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	userID := req.QueryStringParameters["userId"]
	if userID == "" {
		return errorResponse(400, "userId is required")
	}

	words, err := h.wordRepo.ListWords(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list words")
		return errorResponse(500, "Failed to list words")
	}

	if req.QueryStringParameters["learned"] == "true" {
		learned := make([]models.Word, 0, len(words))
		for _, w := range words {
			if w.IsLearned() {
				learned = append(learned, w)
			}
		}
		sort.SliceStable(learned, func(i, j int) bool {
			return learned[i].LearnedAt > learned[j].LearnedAt
		})
		return jsonResponse(200, learned)
	}
	return jsonResponse(200, words)
}

func (h *Handler) handleUpdate(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var request UpdateWordRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return errorResponse(400, "Invalid request body")
	}
	if request.UserID == "" || request.ID == "" {
		return errorResponse(400, "userId and id are required")
	}

	found, err := h.wordRepo.UpdateWord(request.UserID, request.ID, request.Update)
	if err != nil {
		h.logger.WithError(err).Error("Failed to update word")
		return errorResponse(500, "Failed to update word")
	}
	if !found {
		return errorResponse(404, "Word not found")
	}
	return jsonResponse(200, map[string]bool{"success": true})
}

func (h *Handler) handleDelete(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	userID := req.QueryStringParameters["userId"]
	wordID := req.QueryStringParameters["id"]
	if userID == "" || wordID == "" {
		return errorResponse(400, "userId and id are required")
	}

	found, err := h.wordRepo.DeleteWord(userID, wordID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete word")
		return errorResponse(500, "Failed to delete word")
	}
	if !found {
		return errorResponse(404, "Word not found")
	}
	return jsonResponse(200, map[string]bool{"success": true})
}

func (h *Handler) handleLearn(req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var request WordRefRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return errorResponse(400, "Invalid request body")
	}
	if request.UserID == "" || request.ID == "" {
		return errorResponse(400, "userId and id are required")
	}

	found, err := h.wordRepo.MarkWordLearned(request.UserID, request.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to mark word as learned")
		return errorResponse(500, "Failed to mark word as learned")
	}
	if !found {
		return errorResponse(404, "Word not found")
	}
	return jsonResponse(200, map[string]bool{"success": true})
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
