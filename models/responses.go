package models

// Response is the uniform envelope every endpoint answers with,
// success or failure. The HTTP status mirrors the error class.
type Response struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	ErrorCode string   `json:"errorCode,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Data      any      `json:"data,omitempty"`
}

// NewResponse builds a success envelope.
func NewResponse(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// NewErrorResponse builds a failure envelope with a stable machine code and
// optional field-level sub-errors.
func NewErrorResponse(message, errorCode string, errs ...string) Response {
	return Response{Success: false, Message: message, ErrorCode: errorCode, Errors: errs}
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Mode    string `json:"mode,omitempty"`
	Status  string `json:"status"`
}
