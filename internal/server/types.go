package server

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

// ResultResponse is the response of the submit and acknowledge endpoints
type ResultResponse struct {
	Content        string `json:"content,omitempty"`
	ID             string `json:"id,omitempty"`
	Error          string `json:"error,omitempty"`
	OperatorStatus int    `json:"operator_status,omitempty"`
}
