package main

import (
	"context"
	"encoding/json"
	"strings"

	"braincraft/internal/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger       *logrus.Entry
	envVars      *EnvVars
	openaiClient utils.OpenaiAPI
}

func NewHandler(logger *logrus.Entry, envVars *EnvVars, openaiClient utils.OpenaiAPI) (*Handler, error) {
	return &Handler{
		logger:       logger,
		envVars:      envVars,
		openaiClient: openaiClient,
	}, nil
}

type GenerateRequest struct {
	Word           string `json:"word"`
	GenerateQuiz   *bool  `json:"generateQuiz,omitempty"`
	GenerateAnswer *bool  `json:"generateAnswer,omitempty"`
}

type GenerateResponse struct {
	Meaning  string `json:"meaning"`
	Example  string `json:"example"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Error    string `json:"error,omitempty"`
}

// EventHandler autofills a new entry's learning fields. A phrase with an
// embedded space is treated as an idiom and gets the richer idiom prompt
// (breakdown, nuance, usage notes folded into the example field).
func (h *Handler) EventHandler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var request GenerateRequest
	if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
		h.logger.WithError(err).Error("Failed to parse request body")
		return response(400, GenerateResponse{Error: "Invalid request body"}), nil
	}

	word := strings.TrimSpace(request.Word)
	if word == "" {
		return response(400, GenerateResponse{Error: "単語を入力してください"}), nil
	}

	withQuiz := request.GenerateQuiz == nil || *request.GenerateQuiz
	withAnswer := request.GenerateAnswer == nil || *request.GenerateAnswer
	isIdiom := strings.Contains(word, " ")

	generation, err := h.openaiClient.GenerateEntry(word, isIdiom, withQuiz, withAnswer)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate entry")
		return response(500, GenerateResponse{Error: "生成に失敗しました。しばらくしてからお試しください。"}), nil
	}

	result := GenerateResponse{
		Meaning: strings.TrimSpace(generation.Meaning),
		Example: buildExample(generation, isIdiom),
	}
	if withQuiz {
		quiz := strings.TrimSpace(generation.Quiz)
		quizJT := strings.TrimSpace(generation.QuizJT)
		if quiz != "" && quizJT != "" {
			result.Question = quiz + "\n（訳）" + quizJT
		} else {
			result.Question = quiz
		}
	}
	if withAnswer {
		result.Answer = strings.TrimSpace(generation.Answer)
		if result.Answer == "" {
			result.Answer = word
		}
	}

	h.logger.WithFields(logrus.Fields{
		"word":  word,
		"idiom": isIdiom,
	}).Info("Successfully generated entry")
	return response(200, result), nil
}

// buildExample folds the example, its translation and (for idioms) the
// explanation paragraphs into the single example field the word model keeps.
func buildExample(generation utils.EntryGeneration, isIdiom bool) string {
	example := strings.TrimSpace(generation.Example)
	exampleJT := strings.TrimSpace(generation.ExampleJT)
	if example != "" && exampleJT != "" {
		example = example + "\n（訳）" + exampleJT
	}
	if !isIdiom {
		return example
	}

	var parts []string
	if example != "" {
		parts = append(parts, example)
	}
	var explanation []string
	if breakdown := strings.TrimSpace(generation.Breakdown); breakdown != "" {
		explanation = append(explanation, breakdown)
	}
	if reaction := strings.TrimSpace(generation.Reaction); reaction != "" {
		explanation = append(explanation, reaction)
	}
	if usage := strings.TrimSpace(generation.Usage); usage != "" {
		explanation = append(explanation, "【使い分け】"+usage)
	}
	if len(explanation) > 0 {
		parts = append(parts, strings.Join(explanation, "\n\n"))
	}
	return strings.Join(parts, "\n\n")
}

func response(statusCode int, payload GenerateResponse) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(payload)
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(body),
	}
}
