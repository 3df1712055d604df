package models

// ContactRequest is a contact-form submission
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ExportRequest represents an admin export request
type ExportRequest struct {
	Resource string `json:"resource" form:"resource"` // articles, products
	Format   string `json:"format" form:"format"`     // json, ndjson
}
