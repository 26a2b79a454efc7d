package main

import (
	"context"
	"errors"
	"os"

	"braincraft/internal/repository"

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
	SERVICENAME = "lists"
)

type EnvVars struct {
	vocabTableName string
}

func getEnvironmentVariables() (envVars *EnvVars, err error) {
	vocabTableName := os.Getenv("VOCAB_TABLE_NAME")
	if vocabTableName == "" {
		return nil, errors.New("VOCAB_TABLE_NAME is not set")
	}

	return &EnvVars{
		vocabTableName: vocabTableName,
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

	wordRepo := repository.NewWordRepository(logger, dynamodbClient, envVars.vocabTableName)
	listSettingsRepo := repository.NewListSettingsRepository(logger, dynamodbClient, envVars.vocabTableName)

	handler, err := NewHandler(logger, envVars, wordRepo, listSettingsRepo)
	if err != nil {
		logger.WithError(err).Error("Failed to create handler")
		panic(err)
	}

	lambda.Start(handler.EventHandler)
}
