package utils

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

type LinebotAPI interface {
	PushMessage(userID string, message string) error
}

type LineBotClient struct {
	client *linebot.Client
}

func NewLineBotClient(channelSecret string, channelToken string) (LinebotAPI, error) {
	client, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create line bot client: %w", err)
	}
	return &LineBotClient{
		client: client,
	}, nil
}

func (c *LineBotClient) PushMessage(userID string, message string) error {
	_, err := c.client.PushMessage(userID, linebot.NewTextMessage(message).
		WithSender(&linebot.Sender{
			Name: "Reminder Bot",
		})).Do()
	return err
}
