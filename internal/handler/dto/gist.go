// Package dto provides Data Transfer Objects for API responses.
package dto

// ErrorResponse is the JSON body returned for every error.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
