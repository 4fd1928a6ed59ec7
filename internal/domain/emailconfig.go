package domain

// EmailConfig is a company's inbound email (IMAP) integration.
// The password is never returned by the API.
type EmailConfig struct {
	ID               string `json:"id"`
	CompanyID        string `json:"companyId"`
	AuthMethod       string `json:"authMethod"` // "password" or "oauth2"
	IMAPHost         string `json:"imapHost"`
	IMAPPort         int    `json:"imapPort"`
	IMAPUsername     string `json:"imapUsername"`
	InboxFolder      string `json:"inboxFolder"`
	PollIntervalSecs int    `json:"pollIntervalSecs"`
	IsEnabled        bool   `json:"isEnabled"`
	LastSyncAt       string `json:"lastSyncAt,omitempty"`
}

// EmailConfigRequest is the body for creating or updating a
// configuration. The password is only ever sent, never read back.
type EmailConfigRequest struct {
	IMAPHost         string `json:"imapHost"`
	IMAPPort         int    `json:"imapPort"`
	IMAPUsername     string `json:"imapUsername"`
	IMAPPassword     string `json:"imapPassword,omitempty"`
	InboxFolder      string `json:"inboxFolder"`
	PollIntervalSecs int    `json:"pollIntervalSecs"`
}

// EmailConfigTestResponse is the result of a connection test.
type EmailConfigTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
