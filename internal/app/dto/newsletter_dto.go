package dto

import "time"

// SubscribeRequest is the newsletter signup form
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeResponse confirms a signup
type SubscribeResponse struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
