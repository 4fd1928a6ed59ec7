package domain

// Property is a listing in the company inventory.
type Property struct {
	ID                   string  `json:"id,omitempty"`
	Reference            string  `json:"reference,omitempty"`
	CompanyID            string  `json:"companyId,omitempty"`
	Title                string  `json:"title,omitempty"`
	Address              string  `json:"address,omitempty"`
	Zone                 string  `json:"zone,omitempty"`
	Rooms                int     `json:"rooms,omitempty"`
	Bathrooms            int     `json:"bathrooms,omitempty"`
	Price                float64 `json:"price,omitempty"`
	Area                 float64 `json:"area,omitempty"`
	Description          string  `json:"description,omitempty"`
	Image                string  `json:"image,omitempty"`
	Status               string  `json:"status,omitempty"`
	Source               string  `json:"source,omitempty"`
	Type                 string  `json:"type,omitempty"`
	EnergyCertificate    string  `json:"energyCertificate,omitempty"`
	YearBuilt            int     `json:"yearBuilt,omitempty"`
	CompatibleLeadsCount int     `json:"compatibleLeadsCount,omitempty"`
	IsNew                bool    `json:"isNew,omitempty"`
	CreatedAt            string  `json:"createdAt,omitempty"`
}

// PropertySubtype is a catalog entry used when classifying listings.
type PropertySubtype struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
}

// PropertyFilters narrows a property search. Zero values (and the
// "all" sentinel for Status/Source) mean "not filtered" and are
// omitted from the query string entirely.
type PropertyFilters struct {
	MinPrice float64
	MaxPrice float64
	MinRooms int
	Zone     string
	Status   string
	Source   string
	Search   string
}
