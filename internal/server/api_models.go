package server

// ScanRequest asks for a fresh fill plan for one page.
type ScanRequest struct {
	URL string `json:"url" example:"https://example.com/checkout"`
}

// ApplyRequest applies approved fills to one page. Approvals are keyed by
// the locator strings from a scan; absent keys count as denials.
type ApplyRequest struct {
	URL       string          `json:"url" example:"https://example.com/checkout"`
	Approvals map[string]bool `json:"approvals"`
}

// SensitiveTypesResponse lists the field types the safety policy blocks.
type SensitiveTypesResponse struct {
	SensitiveTypes []string `json:"sensitive_types" example:"creditCard,ssn,bank,password,dob"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
