package api

type GetAccessRequest struct{}

type GetAccessResponse struct {
	Subscription *Subscription `json:"subscription,omitempty"`
	Access       *Access       `json:"access"`
}

type ListSubscriptionsRequest struct{}

type SubscriptionInfo struct {
	Email        string        `json:"email"`
	Subscription *Subscription `json:"subscription"`
	Access       *Access       `json:"access"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []*SubscriptionInfo `json:"subscriptions"`
}

// UpdateSubscriptionRequest is the admin override. Zero timestamps clear the field.
type UpdateSubscriptionRequest struct {
	UserID           string `json:"userId"`
	Plan             string `json:"plan,omitempty"`
	Status           string `json:"status"`
	TrialEnd         int64  `json:"trialEnd,omitempty"`
	CurrentPeriodEnd int64  `json:"currentPeriodEnd,omitempty"`
}

type UpdateSubscriptionResponse struct {
	Subscription *Subscription `json:"subscription"`
	Access       *Access       `json:"access"`
}
