package crm

// Config holds connection settings for the CRM's resource API.
type Config struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	LeadSource string
}

// Contact is the CRM's person record.
type Contact struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Lead is the CRM's sales opportunity record.
type Lead struct {
	ID          string `json:"id,omitempty"`
	Reference   string `json:"reference,omitempty"`
	ContactID   string `json:"contact_id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Service     string `json:"service,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// ResponseMetadata is the envelope metadata on every CRM response.
type ResponseMetadata struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// ContactSearchResponse wraps a contact search result.
type ContactSearchResponse struct {
	Metadata ResponseMetadata `json:"metadata"`
	Payload  []Contact        `json:"payload"`
}

// ContactCreateResponse wraps a created contact.
type ContactCreateResponse struct {
	Metadata ResponseMetadata `json:"metadata"`
	Payload  Contact          `json:"payload"`
}

// LeadCreateResponse wraps a created lead.
type LeadCreateResponse struct {
	Metadata ResponseMetadata `json:"metadata"`
	Payload  Lead             `json:"payload"`
}
