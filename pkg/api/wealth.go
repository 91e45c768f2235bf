package api

import "github.com/shopspring/decimal"

type CreateAssetRequest struct {
	Name       string          `json:"name"`
	Kind       string          `json:"kind,omitempty"`
	Value      decimal.Decimal `json:"value"`
	AcquiredAt string          `json:"acquiredAt,omitempty"`
}

type CreateAssetResponse struct {
	Asset *Asset `json:"asset"`
}

type ListAssetsRequest struct{}

type ListAssetsResponse struct {
	Assets []*Asset        `json:"assets"`
	Total  decimal.Decimal `json:"total"`
}

type DeleteAssetRequest struct {
	ID string `json:"id"`
}

type DeleteAssetResponse struct{}

type CreateLiabilityRequest struct {
	Name         string          `json:"name"`
	Kind         string          `json:"kind,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interestRate"`
	DueDate      string          `json:"dueDate,omitempty"`
}

type CreateLiabilityResponse struct {
	Liability *Liability `json:"liability"`
}

type ListLiabilitiesRequest struct{}

type ListLiabilitiesResponse struct {
	Liabilities []*Liability    `json:"liabilities"`
	Total       decimal.Decimal `json:"total"`
}

type DeleteLiabilityRequest struct {
	ID string `json:"id"`
}

type DeleteLiabilityResponse struct{}

type GetNetWorthRequest struct{}

type GetNetWorthResponse struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"netWorth"`
}
