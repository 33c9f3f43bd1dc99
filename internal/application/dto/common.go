package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse confirmación con texto libre.
type MessageResponse struct {
	Message string `json:"message"`
}
