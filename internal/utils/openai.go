package utils

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v2"
)

//go:embed prompt/word_entry.yaml
var wordEntryYAML []byte

//go:embed prompt/idiom_entry.yaml
var idiomEntryYAML []byte

type ParserPrompt struct {
	SystemPrompt string `yaml:"system_prompt"`
}

// EntryGeneration is the model's autofill output for one word or idiom.
// Breakdown, Reaction and Usage are only produced for idioms.
type EntryGeneration struct {
	Meaning   string `json:"meaning"`
	Example   string `json:"example"`
	ExampleJT string `json:"example_jt"`
	Breakdown string `json:"breakdown,omitempty"`
	Reaction  string `json:"reaction,omitempty"`
	Usage     string `json:"usage,omitempty"`
	Quiz      string `json:"quiz,omitempty"`
	QuizJT    string `json:"quiz_jt,omitempty"`
	Answer    string `json:"answer,omitempty"`
}

type OpenaiAPI interface {
	GenerateEntry(word string, isIdiom, withQuiz, withAnswer bool) (EntryGeneration, error)
}

type OpenaiClient struct {
	client *openai.Client
}

func NewOpenAIClient(apiKey string, baseUrl string) (OpenaiAPI, error) {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseUrl
	client := openai.NewClientWithConfig(config)
	return &OpenaiClient{
		client: client,
	}, nil
}

func (c *OpenaiClient) GenerateEntry(word string, isIdiom, withQuiz, withAnswer bool) (EntryGeneration, error) {
	promptYAML := wordEntryYAML
	if isIdiom {
		promptYAML = idiomEntryYAML
	}

	var prompt ParserPrompt
	err := yaml.Unmarshal(promptYAML, &prompt)
	if err != nil {
		return EntryGeneration{}, fmt.Errorf("error parsing prompt yaml: %w", err)
	}

	systemPrompt := strings.ReplaceAll(prompt.SystemPrompt, "{{.WithQuiz}}", fmt.Sprintf("%t", withQuiz))
	systemPrompt = strings.ReplaceAll(systemPrompt, "{{.WithAnswer}}", fmt.Sprintf("%t", withAnswer))

	userPrompt := fmt.Sprintf("次の単語のデータを生成してください：%s", word)
	if isIdiom {
		userPrompt = fmt.Sprintf("次のイディオムのデータを生成してください：%s", word)
	}

	resp, err := c.client.CreateChatCompletion(
		context.Background(),
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 1.0,
		},
	)
	if err != nil {
		return EntryGeneration{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	content := resp.Choices[0].Message.Content

	var generation EntryGeneration
	err = json.Unmarshal([]byte(ExtractJSONObject(content)), &generation)
	if err != nil {
		return EntryGeneration{}, fmt.Errorf("error unmarshalling entry generation response: %w", err)
	}

	return generation, nil
}

// ExtractJSONObject trims any prose or code fencing the model wraps around
// its JSON payload.
func ExtractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return content
	}
	return content[start : end+1]
}
