package models

import "time"

// Subscription statuses.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// Subscription tracks a profile's billing state.
type Subscription struct {
	ID     string
	UserID string

	// Plan is a free-form plan name, e.g. "family" or "solo".
	Plan string

	// Status is one of the Subscription* constants.
	Status string

	// TrialEnd is set for trial subscriptions.
	TrialEnd *time.Time

	// CurrentPeriodEnd is the end of the paid period, if any.
	CurrentPeriodEnd *time.Time

	CreatedAt int64
	UpdatedAt int64
}

// ValidSubscriptionStatus reports whether s is a known status.
func ValidSubscriptionStatus(s string) bool {
	switch s {
	case SubscriptionTrial, SubscriptionActive, SubscriptionPastDue, SubscriptionCanceled, SubscriptionExpired:
		return true
	}
	return false
}
