package api

import "github.com/shopspring/decimal"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type Profile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	DisplayName     string `json:"displayName"`
	Role            string `json:"role"`
	FamilyID        string `json:"familyId,omitempty"`
	MessagingChatID string `json:"messagingChatId,omitempty"`
	Currency        string `json:"currency"`
	CreatedAt       int64  `json:"createdAt"`
}

type Transaction struct {
	ID             string          `json:"id,omitempty"`
	FamilyMemberID string          `json:"familyMemberId,omitempty"`
	CategoryID     string          `json:"categoryId,omitempty"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           string          `json:"date"`
	Source         string          `json:"source,omitempty"`
	Recurrence     string          `json:"recurrence,omitempty"`
	CreatedAt      int64           `json:"createdAt,omitempty"`
	UpdatedAt      int64           `json:"updatedAt,omitempty"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type CategoryTotal struct {
	CategoryID string          `json:"categoryId,omitempty"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Share      float64         `json:"share"`
}

type Family struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	OwnerID string          `json:"ownerId"`
	Members []*FamilyMember `json:"members"`
}

type FamilyMember struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	ProfileID    string `json:"profileId,omitempty"`
}

type Asset struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Kind       string          `json:"kind,omitempty"`
	Value      decimal.Decimal `json:"value"`
	AcquiredAt string          `json:"acquiredAt,omitempty"`
}

type Liability struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interestRate"`
	DueDate      string          `json:"dueDate,omitempty"`
}

// Subscription timestamps are unix seconds; 0 means unset.
type Subscription struct {
	UserID           string `json:"userId"`
	Plan             string `json:"plan"`
	Status           string `json:"status"`
	TrialEnd         int64  `json:"trialEnd,omitempty"`
	CurrentPeriodEnd int64  `json:"currentPeriodEnd,omitempty"`
	UpdatedAt        int64  `json:"updatedAt,omitempty"`
}

type Access struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason"`
	Until   int64  `json:"until,omitempty"`
}

type Suggestion struct {
	ID                   string  `json:"id"`
	TransactionID        string  `json:"transactionId"`
	Kind                 string  `json:"kind"`
	RelatedTransactionID string  `json:"relatedTransactionId,omitempty"`
	CategoryID           string  `json:"categoryId,omitempty"`
	Confidence           float64 `json:"confidence"`
	Reason               string  `json:"reason,omitempty"`
	Status               string  `json:"status"`
	CreatedAt            int64   `json:"createdAt"`
}

type Pattern struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	Frequency           string          `json:"frequency"`
	Occurrences         int             `json:"occurrences"`
	AverageIntervalDays float64         `json:"averageIntervalDays"`
	LastDate            string          `json:"lastDate"`
	NextExpectedDate    string          `json:"nextExpectedDate"`
}

type Report struct {
	ID          string          `json:"id"`
	PeriodStart string          `json:"periodStart"`
	PeriodEnd   string          `json:"periodEnd"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Narrative   string          `json:"narrative"`
	CreatedAt   int64           `json:"createdAt"`
}
