package dto

// PingResponse is returned by the health check endpoint
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}
