package models

// ContactRequest represents a request to draft an outreach email to HR
// @Description Outreach email request
type ContactRequest struct {
	JobTitle       string `json:"job_title" binding:"required" example:"Technicien informatique N2"`
	Company        string `json:"company" binding:"required" example:"Acme inc."`
	HREmail        string `json:"hr_email,omitempty" example:"rh@acme.ca"`
	CandidateName  string `json:"candidate_name" binding:"required" example:"Marie Tremblay"`
	CandidateEmail string `json:"candidate_email" example:"marie@example.com"`
	CVSummary      string `json:"cv_summary" example:"5 ans de support informatique niveau 2."`
}

// ContactResponse represents a drafted outreach email. Nothing is sent.
// @Description Drafted outreach email
type ContactResponse struct {
	To      string `json:"to" example:"recrutement@acmeinc.com"`
	Subject string `json:"subject" example:"Candidature - Technicien informatique N2 - Marie Tremblay"`
	Body    string `json:"body"`
}

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"could not read document"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"malformed PDF"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// ProfileRequest represents a JSON request to analyze résumé text
// @Description Résumé text to analyze
type ProfileRequest struct {
	CVText string `json:"cv_text" binding:"required"`
}

// ProfileResponse represents the profile derived from a résumé
// @Description Derived profile and search queries
type ProfileResponse struct {
	Profile Profile  `json:"profile" swaggertype:"object"`
	Queries []string `json:"queries" example:"technicien+informatique+n2+informatique+support+réseau"`
}
