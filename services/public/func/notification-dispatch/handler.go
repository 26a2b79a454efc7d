package main

import (
	"context"
	"encoding/json"
	"time"

	"braincraft/internal/notification"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger     *logrus.Entry
	envVars    *EnvVars
	dispatcher *notification.Dispatcher
	now        func() time.Time
}

func NewHandler(logger *logrus.Entry, envVars *EnvVars, dispatcher *notification.Dispatcher) (*Handler, error) {
	return &Handler{
		logger:     logger,
		envVars:    envVars,
		dispatcher: dispatcher,
		now:        time.Now,
	}, nil
}

// EventHandler runs one reminder tick. The scheduler calls this endpoint at
// least once per minute; everything that must not repeat is guarded by the
// per-user sent-tracking, not by this handler.
func (h *Handler) EventHandler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if h.envVars.cronSecret != "" {
		if req.Headers["authorization"] != "Bearer "+h.envVars.cronSecret &&
			req.Headers["Authorization"] != "Bearer "+h.envVars.cronSecret {
			h.logger.Warn("Rejected tick with missing or wrong cron secret")
			return events.APIGatewayProxyResponse{
				StatusCode: 401,
				Body:       "Unauthorized",
			}, nil
		}
	}

	result, err := h.dispatcher.Dispatch(h.now())
	if err != nil {
		h.logger.WithError(err).Error("Failed to run reminder tick")
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Body:       "Internal server error",
		}, nil
	}

	body, _ := json.Marshal(result)
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(body),
	}, nil
}
