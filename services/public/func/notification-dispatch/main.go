package main

import (
	"context"
	"errors"
	"os"

	"braincraft/internal/notification"
	"braincraft/internal/repository"
	"braincraft/internal/utils"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

const (
	SEVERITY    = "severity"
	MESSAGE     = "message"
	TIMESTAMP   = "timestamp"
	COMPONENT   = "component"
	SERVICENAME = "notification-dispatch"
)

type EnvVars struct {
	channelSecret  string
	channelToken   string
	vocabTableName string
	cronSecret     string
}

func getEnvironmentVariables() (envVars *EnvVars, err error) {
	channelSecret := os.Getenv("CHANNEL_SECRET")
	if channelSecret == "" {
		return nil, errors.New("CHANNEL_SECRET is not set")
	}

	channelToken := os.Getenv("CHANNEL_TOKEN")
	if channelToken == "" {
		return nil, errors.New("CHANNEL_TOKEN is not set")
	}

	vocabTableName := os.Getenv("VOCAB_TABLE_NAME")
	if vocabTableName == "" {
		return nil, errors.New("VOCAB_TABLE_NAME is not set")
	}

	// Optional shared secret for the scheduler trigger.
	cronSecret := os.Getenv("CRON_SECRET")

	return &EnvVars{
		channelSecret:  channelSecret,
		channelToken:   channelToken,
		vocabTableName: vocabTableName,
		cronSecret:     cronSecret,
	}, nil
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  TIMESTAMP,
			logrus.FieldKeyLevel: SEVERITY,
			logrus.FieldKeyMsg:   MESSAGE,
		},
	})
	logger := logrus.WithField(COMPONENT, SERVICENAME)

	envVars, err := getEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Error("Failed to get environment variables")
		panic(err)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.WithError(err).Error("Failed to load AWS config")
		panic(err)
	}
	dynamodbClient := dynamodb.NewFromConfig(cfg)

	botClient, err := utils.NewLineBotClient(envVars.channelSecret, envVars.channelToken)
	if err != nil {
		logger.WithError(err).Error("Failed to create line bot client")
		panic(err)
	}

	wordRepo := repository.NewWordRepository(logger, dynamodbClient, envVars.vocabTableName)
	settingsRepo := repository.NewSettingsRepository(logger, dynamodbClient, envVars.vocabTableName)
	listSettingsRepo := repository.NewListSettingsRepository(logger, dynamodbClient, envVars.vocabTableName)
	dispatcher := notification.NewDispatcher(logger, wordRepo, settingsRepo, listSettingsRepo, botClient)

	handler, err := NewHandler(logger, envVars, dispatcher)
	if err != nil {
		logger.WithError(err).Error("Failed to create handler")
		panic(err)
	}

	lambda.Start(handler.EventHandler)
}
