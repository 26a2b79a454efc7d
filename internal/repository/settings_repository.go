package repository

import (
	"context"
	"fmt"
	"strings"

	"braincraft/internal/models"
	"braincraft/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

const (
	settingsKeySuffix = "#settings"
	settingsSortKey   = "notification"
)

type settingsRepository struct {
	logger    *logrus.Entry
	dynamodb  utils.DynamoDbAPI
	tableName string
}

func NewSettingsRepository(logger *logrus.Entry, dynamodb utils.DynamoDbAPI, tableName string) utils.NotificationSettingsRepository {
	return &settingsRepository{
		logger:    logger,
		dynamodb:  dynamodb,
		tableName: tableName,
	}
}

// storedSettings is the DynamoDB shape of the settings record. The idiom flag
// is a pointer so an item written before the flag existed still reads as the
// default (enabled).
type storedSettings struct {
	Enabled                   bool     `dynamodbav:"enabled"`
	TimeSlots                 []string `dynamodbav:"timeSlots"`
	IdiomNotificationsEnabled *bool    `dynamodbav:"idiomNotificationsEnabled"`
	LastSentDate              string   `dynamodbav:"lastSentDate"`
	LastSentTimeSlots         []string `dynamodbav:"lastSentTimeSlots"`
}

func (r *settingsRepository) key(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: userID + settingsKeySuffix},
		"sk": &types.AttributeValueMemberS{Value: settingsSortKey},
	}
}

// GetSettings never fails on a malformed item: anything that cannot be read
// falls back to the defaults, so the selector stays total over stored
// garbage. Only a DynamoDB error is surfaced.
func (r *settingsRepository) GetSettings(userID string) (models.NotificationSettings, error) {
	result, err := r.dynamodb.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(userID),
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to get notification settings from DynamoDB")
		return models.NotificationSettings{}, fmt.Errorf("failed to get notification settings: %w", err)
	}

	if result.Item == nil {
		return models.DefaultNotificationSettings(), nil
	}

	var stored storedSettings
	if err := attributevalue.UnmarshalMap(result.Item, &stored); err != nil {
		r.logger.WithError(err).WithField("userId", userID).Warn("Malformed settings item, using defaults")
		return models.DefaultNotificationSettings(), nil
	}

	settings := models.NotificationSettings{
		Enabled:                   stored.Enabled,
		TimeSlots:                 stored.TimeSlots,
		IdiomNotificationsEnabled: stored.IdiomNotificationsEnabled == nil || *stored.IdiomNotificationsEnabled,
		LastSentDate:              stored.LastSentDate,
		LastSentTimeSlots:         stored.LastSentTimeSlots,
	}
	if len(settings.TimeSlots) == 0 {
		settings.TimeSlots = []string{models.DefaultTimeSlot}
	}
	return settings, nil
}

func (r *settingsRepository) SetSettings(userID string, settings models.NotificationSettings) error {
	idiom := settings.IdiomNotificationsEnabled
	item, err := attributevalue.MarshalMap(storedSettings{
		Enabled:                   settings.Enabled,
		TimeSlots:                 settings.TimeSlots,
		IdiomNotificationsEnabled: &idiom,
		LastSentDate:              settings.LastSentDate,
		LastSentTimeSlots:         settings.LastSentTimeSlots,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification settings: %w", err)
	}
	for k, v := range r.key(userID) {
		item[k] = v
	}
	item["userId"] = &types.AttributeValueMemberS{Value: userID}

	_, err = r.dynamodb.PutItem(context.Background(), &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to save notification settings to DynamoDB")
		return fmt.Errorf("failed to save notification settings: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"userId":  userID,
		"enabled": settings.Enabled,
		"slots":   settings.TimeSlots,
	}).Info("Successfully saved notification settings")
	return nil
}

// ListUserIDs returns every user holding a settings record.
func (r *settingsRepository) ListUserIDs() ([]string, error) {
	var userIDs []string
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.dynamodb.Scan(context.Background(), &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("sk = :sk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sk": &types.AttributeValueMemberS{Value: settingsSortKey},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			r.logger.WithError(err).Error("Failed to scan notification settings from DynamoDB")
			return nil, fmt.Errorf("failed to scan notification settings: %w", err)
		}

		for _, item := range result.Items {
			if attr, ok := item["pk"].(*types.AttributeValueMemberS); ok {
				userIDs = append(userIDs, strings.TrimSuffix(attr.Value, settingsKeySuffix))
			}
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return userIDs, nil
}

// MarkSent records that the given slot was delivered on the given date. A
// date rollover resets the slot set; within one date the update is a set
// union, so re-marking and overlapping ticks are idempotent.
func (r *settingsRepository) MarkSent(userID, date, slot string) error {
	settings, err := r.GetSettings(userID)
	if err != nil {
		return err
	}

	if settings.LastSentDate != date {
		settings.LastSentDate = date
		settings.LastSentTimeSlots = nil
	}
	for _, sent := range settings.LastSentTimeSlots {
		if sent == slot {
			return nil
		}
	}
	settings.LastSentTimeSlots = append(settings.LastSentTimeSlots, slot)

	return r.SetSettings(userID, settings)
}
