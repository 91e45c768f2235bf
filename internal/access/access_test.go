package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/famledger/internal/models"
)

func TestHasAccess(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		sub  *models.Subscription
		want bool
	}{
		{"nil subscription", nil, false},
		{"active without dates", &models.Subscription{Status: models.SubscriptionActive}, true},
		{"active with expired period", &models.Subscription{Status: models.SubscriptionActive, CurrentPeriodEnd: &past, TrialEnd: &past}, true},
		{"trial in window", &models.Subscription{Status: models.SubscriptionTrial, TrialEnd: &future}, true},
		{"trial ended", &models.Subscription{Status: models.SubscriptionTrial, TrialEnd: &past}, false},
		{"trial ends exactly now", &models.Subscription{Status: models.SubscriptionTrial, TrialEnd: &now}, false},
		{"trial without end date", &models.Subscription{Status: models.SubscriptionTrial}, false},
		{"trial ignores paid period", &models.Subscription{Status: models.SubscriptionTrial, TrialEnd: &past, CurrentPeriodEnd: &future}, false},
		{"canceled but period running", &models.Subscription{Status: models.SubscriptionCanceled, CurrentPeriodEnd: &future}, true},
		{"past due with lapsed period", &models.Subscription{Status: models.SubscriptionPastDue, CurrentPeriodEnd: &past}, false},
		{"expired without period", &models.Subscription{Status: models.SubscriptionExpired}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAccess(tt.sub, now))
		})
	}
}

func TestEvaluateReasons(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)

	d := Evaluate(&models.Subscription{Status: models.SubscriptionCanceled, CurrentPeriodEnd: &future}, now)
	assert.True(t, d.Granted)
	assert.Equal(t, ReasonPaidPeriod, d.Reason)
	assert.Equal(t, future, d.Until)

	d = Evaluate(nil, now)
	assert.False(t, d.Granted)
	assert.Equal(t, ReasonNone, d.Reason)
}

func TestNewTrial(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := NewTrial("user-1", 14, now)

	assert.Equal(t, models.SubscriptionTrial, sub.Status)
	assert.Equal(t, now.AddDate(0, 0, 14), *sub.TrialEnd)
	assert.True(t, HasAccess(sub, now.AddDate(0, 0, 13)))
	assert.False(t, HasAccess(sub, now.AddDate(0, 0, 14)))
}
