package domain

// ============================================================
// Auth — request / response types (matches backend API contract)
// ============================================================

// Agent is the authenticated CRM user a session belongs to.
// The request layer treats it as an opaque unit stored alongside
// the bearer token.
type Agent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for 200 from POST /auth/login and from
// POST /auth/register/{invitationToken}.
type LoginResponse struct {
	Token string `json:"token"`
	Agent *Agent `json:"agent"`
}

// RegisterRequest is the body for POST /auth/register/{invitationToken}.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// GenericResponse is the plain message envelope several auth
// endpoints return.
type GenericResponse struct {
	Message string `json:"message"`
}
