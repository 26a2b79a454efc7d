package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"braincraft/internal/models"
	"braincraft/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

const listSettingsSortKey = "all"

type listSettingsRepository struct {
	logger    *logrus.Entry
	dynamodb  utils.DynamoDbAPI
	tableName string
}

func NewListSettingsRepository(logger *logrus.Entry, dynamodb utils.DynamoDbAPI, tableName string) utils.ListSettingsRepository {
	return &listSettingsRepository{
		logger:    logger,
		dynamodb:  dynamodb,
		tableName: tableName,
	}
}

// One item per user: PK = userId#listSettings, SK = "all", with the
// name -> settings map as a JSON-encoded string column. Lists without an
// entry read as notification-enabled.
func (r *listSettingsRepository) loadSettings(userID string) (map[string]models.ListSettings, error) {
	pk := fmt.Sprintf("%s#listSettings", userID)

	result, err := r.dynamodb.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
			"sk": &types.AttributeValueMemberS{Value: listSettingsSortKey},
		},
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to get list settings from DynamoDB")
		return nil, fmt.Errorf("failed to get list settings: %w", err)
	}

	settings := map[string]models.ListSettings{}
	if result.Item == nil {
		return settings, nil
	}
	if attr, ok := result.Item["settings"].(*types.AttributeValueMemberS); ok {
		if err := json.Unmarshal([]byte(attr.Value), &settings); err != nil {
			// Default-safe: unreadable settings mean every list is enabled.
			r.logger.WithError(err).WithField("userId", userID).Warn("Malformed list settings item, using defaults")
			return map[string]models.ListSettings{}, nil
		}
	}
	return settings, nil
}

func (r *listSettingsRepository) saveSettings(userID string, settings map[string]models.ListSettings) error {
	pk := fmt.Sprintf("%s#listSettings", userID)
	timestamp := time.Now().UTC().Format(time.RFC3339)

	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal list settings: %w", err)
	}

	_, err = r.dynamodb.PutItem(context.Background(), &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"pk":        &types.AttributeValueMemberS{Value: pk},
			"sk":        &types.AttributeValueMemberS{Value: listSettingsSortKey},
			"userId":    &types.AttributeValueMemberS{Value: userID},
			"settings":  &types.AttributeValueMemberS{Value: string(settingsJSON)},
			"updatedAt": &types.AttributeValueMemberS{Value: timestamp},
		},
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to save list settings to DynamoDB")
		return fmt.Errorf("failed to save list settings: %w", err)
	}
	return nil
}

func (r *listSettingsRepository) GetNotificationMap(userID string, listNames []string) (map[string]bool, error) {
	settings, err := r.loadSettings(userID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(listNames))
	for _, name := range listNames {
		normalized := models.NormalizeListName(name)
		if s, ok := settings[normalized]; ok {
			result[normalized] = s.IsNotificationEnabled
		} else {
			result[normalized] = true
		}
	}
	return result, nil
}

func (r *listSettingsRepository) SetNotificationEnabled(userID, listName string, enabled bool) error {
	settings, err := r.loadSettings(userID)
	if err != nil {
		return err
	}

	settings[models.NormalizeListName(listName)] = models.ListSettings{IsNotificationEnabled: enabled}
	if err := r.saveSettings(userID, settings); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"userId":  userID,
		"list":    listName,
		"enabled": enabled,
	}).Info("Successfully saved list notification setting")
	return nil
}

func (r *listSettingsRepository) RenameList(userID, oldName, newName string) error {
	settings, err := r.loadSettings(userID)
	if err != nil {
		return err
	}

	old, ok := settings[oldName]
	if !ok {
		return nil
	}
	delete(settings, oldName)
	settings[models.NormalizeListName(newName)] = old
	return r.saveSettings(userID, settings)
}

func (r *listSettingsRepository) DeleteList(userID, listName string) error {
	settings, err := r.loadSettings(userID)
	if err != nil {
		return err
	}

	if _, ok := settings[listName]; !ok {
		return nil
	}
	delete(settings, listName)
	return r.saveSettings(userID, settings)
}
