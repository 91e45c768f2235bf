package api

import "github.com/shopspring/decimal"

type GenerateReportRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type GenerateReportResponse struct {
	Report      *Report          `json:"report"`
	SavingsRate float64          `json:"savingsRate"`
	ByCategory  []*CategoryTotal `json:"byCategory"`
	TopExpenses []*Transaction   `json:"topExpenses"`
	NetWorth    decimal.Decimal  `json:"netWorth"`
}

type ListReportsRequest struct{}

type ListReportsResponse struct {
	Reports []*Report `json:"reports"`
}
