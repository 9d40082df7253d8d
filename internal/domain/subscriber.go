package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// Subscriber is a newsletter signup
type Subscriber struct {
	Email        string
	SubscribedAt time.Time
}

// NewSubscriber validates and normalizes the address
func NewSubscriber(email string) (*Subscriber, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return nil, ErrInvalidEmail
	}

	return &Subscriber{
		Email:        strings.ToLower(addr.Address),
		SubscribedAt: time.Now(),
	}, nil
}
