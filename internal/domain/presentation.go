package domain

// PresentedProperty is the trimmed listing shape embedded in
// presentations and match results.
type PresentedProperty struct {
	ID          string  `json:"id"`
	Reference   string  `json:"reference"`
	Title       string  `json:"title"`
	Address     string  `json:"address,omitempty"`
	Zone        string  `json:"zone,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Area        float64 `json:"area,omitempty"`
	Rooms       int     `json:"rooms,omitempty"`
	Bathrooms   int     `json:"bathrooms,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// PropertyMatch is a backend-scored candidate for a lead.
type PropertyMatch struct {
	Property     PresentedProperty `json:"property"`
	MatchPercent float64           `json:"matchPercent"`
	IsInquired   bool              `json:"isInquired"`
	IsDismissed  bool              `json:"isDismissed"`
}

// PresentedLead is the lead contact block of a shared presentation.
type PresentedLead struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Presentation is the public, token-gated selection of properties
// shared with a lead.
type Presentation struct {
	Lead         PresentedLead       `json:"lead"`
	Properties   []PresentedProperty `json:"properties"`
	ContactPhone string              `json:"contactPhone"`
}

// CreatePresentationRequest is the body for POST /presentations.
type CreatePresentationRequest struct {
	LeadID      string   `json:"leadId"`
	PropertyIDs []string `json:"propertyIds"`
}

// CreatePresentationResponse carries the share token and public URL.
type CreatePresentationResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
