package domain

// Message is one entry in a lead conversation. SenderType is one of
// "lead", "agent" or "ai".
type Message struct {
	ID         string `json:"id"`
	SenderType string `json:"senderType"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	Channel    string `json:"channel,omitempty"`
	AISummary  string `json:"aiSummary,omitempty"`
}

// Conversation groups the messages exchanged with a lead over one channel.
type Conversation struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"leadId"`
	Channel   string    `json:"channel,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt string    `json:"createdAt"`
}

// OutgoingMessage is the body for POST /conversations/{leadId}/messages.
type OutgoingMessage struct {
	SenderType string `json:"senderType"`
	Content    string `json:"content"`
}
