package domain

// Invitation is a registration invitation issued to an email address.
type Invitation struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	CompanyID string `json:"companyId"`
	Used      bool   `json:"used"`
	UsedAt    string `json:"usedAt,omitempty"`
	ExpiresAt string `json:"expiresAt"`
	CreatedAt string `json:"createdAt"`
}

// RequestInvitationRequest is the body for POST /invitations/request.
type RequestInvitationRequest struct {
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
}

// RequestInvitationResponse is the acknowledgement for an invitation request.
type RequestInvitationResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
