// Package access decides whether a subscription currently grants access.
package access

import (
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// Reasons returned by Evaluate.
const (
	ReasonActive     = "active"
	ReasonTrial      = "trial"
	ReasonPaidPeriod = "paid_period"
	ReasonExpired    = "expired"
	ReasonNone       = "none"
)

// Decision is the outcome of evaluating a subscription.
type Decision struct {
	Granted bool
	Reason  string
	// Until is when access lapses, zero for active subscriptions or denials.
	Until time.Time
}

// HasAccess reports whether sub grants access at now.
//
// Active subscriptions always grant access. Trials grant access until
// TrialEnd. Any other status grants access while CurrentPeriodEnd is in
// the future.
func HasAccess(sub *models.Subscription, now time.Time) bool {
	return Evaluate(sub, now).Granted
}

// Evaluate is HasAccess with the reason attached.
func Evaluate(sub *models.Subscription, now time.Time) Decision {
	if sub == nil {
		return Decision{Reason: ReasonNone}
	}

	switch sub.Status {
	case models.SubscriptionActive:
		return Decision{Granted: true, Reason: ReasonActive}
	case models.SubscriptionTrial:
		if sub.TrialEnd != nil && sub.TrialEnd.After(now) {
			return Decision{Granted: true, Reason: ReasonTrial, Until: *sub.TrialEnd}
		}
		return Decision{Reason: ReasonExpired}
	}

	if sub.CurrentPeriodEnd != nil {
		if sub.CurrentPeriodEnd.After(now) {
			return Decision{Granted: true, Reason: ReasonPaidPeriod, Until: *sub.CurrentPeriodEnd}
		}
		return Decision{Reason: ReasonExpired}
	}

	return Decision{Reason: ReasonNone}
}

// NewTrial builds the subscription created at registration.
func NewTrial(userID string, trialDays int, now time.Time) *models.Subscription {
	end := now.Add(time.Duration(trialDays) * 24 * time.Hour)
	return &models.Subscription{
		UserID:    userID,
		Plan:      "trial",
		Status:    models.SubscriptionTrial,
		TrialEnd:  &end,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}
}
