package api

import (
	"context"
	"net/http"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// ListConversations fetches all conversations attached to a lead.
func (c *Client) ListConversations(ctx context.Context, leadID string) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := c.Do(ctx, Request{
		Op:     "conversations.list",
		Method: http.MethodGet,
		Path:   "/lead/" + leadID + "/conversations",
	}, &conversations)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// SendMessage appends a message to a lead's conversation.
func (c *Client) SendMessage(ctx context.Context, leadID string, msg domain.OutgoingMessage) (*domain.Message, error) {
	var sent domain.Message
	err := c.Do(ctx, Request{
		Op:     "conversations.send",
		Method: http.MethodPost,
		Path:   "/conversations/" + leadID + "/messages",
		Body:   msg,
	}, &sent)
	if err != nil {
		return nil, err
	}
	return &sent, nil
}
