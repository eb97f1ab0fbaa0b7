// Package api defines the JSON request and response bodies of the HTTP API.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a short acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
