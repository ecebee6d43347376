package model

// APIResponse is the common envelope for success and error payloads
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// NewErrorResponse builds an error envelope. detail is optional and must
// never carry internal error text for 5xx responses.
func NewErrorResponse(message, detail string) APIResponse {
	return APIResponse{Success: false, Message: message, Error: detail}
}
