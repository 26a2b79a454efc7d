package utils

import (
	"context"

	"braincraft/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDbAPI defines the DynamoDB operations needed by our application
type DynamoDbAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// WordRepository defines word-collection database operations. ListWords
// returns the most recently registered word first.
type WordRepository interface {
	ListWords(userID string) ([]models.Word, error)
	AddWord(userID string, word models.Word) (*models.Word, error)
	UpdateWord(userID, wordID string, updates models.WordUpdate) (bool, error)
	DeleteWord(userID, wordID string) (bool, error)
	MarkWordLearned(userID, wordID string) (bool, error)
	ListNames(userID string) ([]string, error)
	RenameList(userID, oldName, newName string) (int, error)
	DeleteList(userID, listName string) (int, error)
}

// NotificationSettingsRepository defines notification-preference operations.
// MarkSent must behave as a set union on the sent slots for the given date so
// that overlapping ticks never lose a recorded slot.
type NotificationSettingsRepository interface {
	GetSettings(userID string) (models.NotificationSettings, error)
	SetSettings(userID string, settings models.NotificationSettings) error
	ListUserIDs() ([]string, error)
	MarkSent(userID, date, slot string) error
}

// ListSettingsRepository defines per-list option operations. A list with no
// stored settings reads as notification-enabled.
type ListSettingsRepository interface {
	GetNotificationMap(userID string, listNames []string) (map[string]bool, error)
	SetNotificationEnabled(userID, listName string, enabled bool) error
	RenameList(userID, oldName, newName string) error
	DeleteList(userID, listName string) error
}
