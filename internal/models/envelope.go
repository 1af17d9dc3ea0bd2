package models

// Envelope wraps every API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// ContactReply is the body returned by the contact endpoint.
type ContactReply struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
