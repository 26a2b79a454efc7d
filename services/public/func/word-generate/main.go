package main

import (
	"errors"
	"os"

	"braincraft/internal/utils"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

const (
	SEVERITY    = "severity"
	MESSAGE     = "message"
	TIMESTAMP   = "timestamp"
	COMPONENT   = "component"
	SERVICENAME = "word-generate"
)

type EnvVars struct {
	openaiBaseUrl string
	openaiApiKey  string
}

func getEnvironmentVariables() (envVars *EnvVars, err error) {
	openaiBaseUrl := os.Getenv("OPENAI_BASE_URL")
	if openaiBaseUrl == "" {
		return nil, errors.New("OPENAI_BASE_URL is not set")
	}

	openaiApiKey := os.Getenv("OPENAI_API_KEY")
	if openaiApiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	return &EnvVars{
		openaiBaseUrl: openaiBaseUrl,
		openaiApiKey:  openaiApiKey,
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

	openaiClient, err := utils.NewOpenAIClient(envVars.openaiApiKey, envVars.openaiBaseUrl)
	if err != nil {
		logger.WithError(err).Error("Failed to create openai client")
		panic(err)
	}

	handler, err := NewHandler(logger, envVars, openaiClient)
	if err != nil {
		logger.WithError(err).Error("Failed to create handler")
		panic(err)
	}

	lambda.Start(handler.EventHandler)
}
