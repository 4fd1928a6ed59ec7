package domain

// Lead is a prospective buyer tracked by the CRM.
type Lead struct {
	ID                       string  `json:"id,omitempty"`
	Name                     string  `json:"name,omitempty"`
	Email                    string  `json:"email,omitempty"`
	Phone                    string  `json:"phone,omitempty"`
	Status                   string  `json:"status,omitempty"`
	Language                 string  `json:"language,omitempty"`
	Source                   string  `json:"source,omitempty"`
	Budget                   float64 `json:"budget,omitempty"`
	Zone                     string  `json:"zone,omitempty"`
	PropertyType             string  `json:"propertyType,omitempty"`
	Channel                  string  `json:"channel,omitempty"`
	SuggestedPropertiesCount int     `json:"suggestedPropertiesCount,omitempty"`
	LastInteraction          string  `json:"lastInteraction,omitempty"`
	AssignedAgent            string  `json:"assignedAgent,omitempty"`
	CompanyID                string  `json:"companyId,omitempty"`
	PropertyID               string  `json:"propertyId,omitempty"`
	Rooms                    int     `json:"rooms,omitempty"`
	Parking                  bool    `json:"parking,omitempty"`
	Notes                    string  `json:"notes,omitempty"`
}
