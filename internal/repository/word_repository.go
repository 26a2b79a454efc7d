package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"braincraft/internal/models"
	"braincraft/internal/notification"
	"braincraft/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const wordsSortKey = "all"

type wordRepository struct {
	logger    *logrus.Entry
	dynamodb  utils.DynamoDbAPI
	tableName string
}

func NewWordRepository(logger *logrus.Entry, dynamodb utils.DynamoDbAPI, tableName string) utils.WordRepository {
	return &wordRepository{
		logger:    logger,
		dynamodb:  dynamodb,
		tableName: tableName,
	}
}

// The whole collection is stored as one item per user: PK = userId#words,
// SK = "all", with the words as a JSON-encoded string column.
func (r *wordRepository) loadWords(userID string) ([]models.Word, error) {
	pk := fmt.Sprintf("%s#words", userID)

	result, err := r.dynamodb.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
			"sk": &types.AttributeValueMemberS{Value: wordsSortKey},
		},
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to get words from DynamoDB")
		return nil, fmt.Errorf("failed to get words: %w", err)
	}

	if result.Item == nil {
		return []models.Word{}, nil
	}

	var words []models.Word
	if attr, ok := result.Item["words"].(*types.AttributeValueMemberS); ok {
		if err := json.Unmarshal([]byte(attr.Value), &words); err != nil {
			r.logger.WithError(err).Error("Failed to unmarshal words field")
			return nil, fmt.Errorf("failed to parse words field: %w", err)
		}
	}
	if words == nil {
		words = []models.Word{}
	}
	return words, nil
}

func (r *wordRepository) saveWords(userID string, words []models.Word) error {
	pk := fmt.Sprintf("%s#words", userID)
	timestamp := time.Now().UTC().Format(time.RFC3339)

	wordsJSON, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to marshal words: %w", err)
	}

	_, err = r.dynamodb.PutItem(context.Background(), &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"pk":        &types.AttributeValueMemberS{Value: pk},
			"sk":        &types.AttributeValueMemberS{Value: wordsSortKey},
			"userId":    &types.AttributeValueMemberS{Value: userID},
			"words":     &types.AttributeValueMemberS{Value: string(wordsJSON)},
			"updatedAt": &types.AttributeValueMemberS{Value: timestamp},
		},
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to save words to DynamoDB")
		return fmt.Errorf("failed to save words: %w", err)
	}
	return nil
}

func (r *wordRepository) ListWords(userID string) ([]models.Word, error) {
	return r.loadWords(userID)
}

func (r *wordRepository) AddWord(userID string, word models.Word) (*models.Word, error) {
	words, err := r.loadWords(userID)
	if err != nil {
		return nil, err
	}

	word.ID = uuid.NewString()
	word.ListName = models.NormalizeListName(word.ListName)
	if word.Type != models.WordTypeIdiom {
		word.Type = models.WordTypeWord
	}
	word.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	// Newest first.
	words = append([]models.Word{word}, words...)
	if err := r.saveWords(userID, words); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"userId": userID,
		"wordId": word.ID,
		"list":   word.ListName,
	}).Info("Successfully registered word")
	return &word, nil
}

func (r *wordRepository) UpdateWord(userID, wordID string, updates models.WordUpdate) (bool, error) {
	words, err := r.loadWords(userID)
	if err != nil {
		return false, err
	}

	for i := range words {
		if words[i].ID != wordID {
			continue
		}
		if updates.Word != nil {
			words[i].Word = *updates.Word
		}
		if updates.Meaning != nil {
			words[i].Meaning = *updates.Meaning
		}
		if updates.Example != nil {
			words[i].Example = *updates.Example
		}
		if updates.Question != nil {
			words[i].Question = *updates.Question
		}
		if updates.Answer != nil {
			words[i].Answer = *updates.Answer
		}
		if updates.ListName != nil {
			words[i].ListName = models.NormalizeListName(*updates.ListName)
		}
		if err := r.saveWords(userID, words); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (r *wordRepository) DeleteWord(userID, wordID string) (bool, error) {
	words, err := r.loadWords(userID)
	if err != nil {
		return false, err
	}

	for i := range words {
		if words[i].ID == wordID {
			words = append(words[:i], words[i+1:]...)
			if err := r.saveWords(userID, words); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *wordRepository) MarkWordLearned(userID, wordID string) (bool, error) {
	words, err := r.loadWords(userID)
	if err != nil {
		return false, err
	}

	for i := range words {
		if words[i].ID == wordID {
			words[i].LearnedAt = notification.DateOf(time.Now().In(notification.Zone))
			if err := r.saveWords(userID, words); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ListNames returns the user's list names with the default list first and the
// rest sorted lexicographically.
func (r *wordRepository) ListNames(userID string) ([]string, error) {
	words, err := r.loadWords(userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{models.DefaultListName: {}}
	names := []string{models.DefaultListName}
	for _, w := range words {
		name := models.NormalizeListName(w.ListName)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Slice(names[1:], func(i, j int) bool {
		return names[1:][i] < names[1:][j]
	})
	return names, nil
}

func (r *wordRepository) RenameList(userID, oldName, newName string) (int, error) {
	if oldName == models.DefaultListName {
		return 0, nil
	}
	words, err := r.loadWords(userID)
	if err != nil {
		return 0, err
	}

	target := models.NormalizeListName(newName)
	count := 0
	for i := range words {
		if models.NormalizeListName(words[i].ListName) == oldName {
			words[i].ListName = target
			count++
		}
	}
	if count > 0 {
		if err := r.saveWords(userID, words); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// DeleteList moves the list's words back to the default list. The word data
// itself is kept.
func (r *wordRepository) DeleteList(userID, listName string) (int, error) {
	if listName == models.DefaultListName {
		return 0, nil
	}
	return r.RenameList(userID, listName, models.DefaultListName)
}
