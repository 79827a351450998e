package domain

import "time"

// SubscriberStatus enumerates the states a newsletter subscriber can be in.
type SubscriberStatus string

const (
	SubscriberPending      SubscriberStatus = "pending"
	SubscriberConfirmed    SubscriberStatus = "confirmed"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// Subscriber is a newsletter subscriber record. The email address is the
// natural key; status transitions are pending -> confirmed -> unsubscribed,
// with re-subscription resetting an address back to pending.
type Subscriber struct {
	Email          string           `json:"email" dynamodbav:"email"`
	Status         SubscriberStatus `json:"status" dynamodbav:"status"`
	SubscribedAt   time.Time        `json:"subscribed_at" dynamodbav:"subscribed_at"`
	ConfirmedAt    *time.Time       `json:"confirmed_at,omitempty" dynamodbav:"confirmed_at,omitempty"`
	UnsubscribedAt *time.Time       `json:"unsubscribed_at,omitempty" dynamodbav:"unsubscribed_at,omitempty"`
}

// IsConfirmed reports whether the subscriber is active on the list.
func (s Subscriber) IsConfirmed() bool {
	return s.Status == SubscriberConfirmed
}
