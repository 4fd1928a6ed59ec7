package domain

// Company is the agency an agent belongs to.
type Company struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email1     string `json:"email1,omitempty"`
	Email2     string `json:"email2,omitempty"`
	Phone1     string `json:"phone1,omitempty"`
	Phone2     string `json:"phone2,omitempty"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country,omitempty"`
	Website    string `json:"website,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// UpdateAgentRequest is the body for PUT /agents/{id}.
type UpdateAgentRequest struct {
	Name string `json:"name"`
}
