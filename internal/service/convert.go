package service

import (
	"strings"
	"time"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/report"
	"github.com/mmynk/famledger/pkg/api"
)

func toAPIProfile(p *models.Profile) *api.Profile {
	return &api.Profile{
		ID:              p.ID,
		Email:           p.Email,
		DisplayName:     p.DisplayName,
		Role:            p.Role,
		FamilyID:        p.FamilyID,
		MessagingChatID: p.MessagingChatID,
		Currency:        p.Currency,
		CreatedAt:       p.CreatedAt,
	}
}

func toAPITransaction(t *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:             t.ID,
		FamilyMemberID: t.FamilyMemberID,
		CategoryID:     t.CategoryID,
		Type:           t.Type,
		Amount:         t.Amount,
		Description:    t.Description,
		Date:           formatDate(t.Date),
		Source:         t.Source,
		Recurrence:     t.Recurrence,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toAPITransactions(txns []*models.Transaction) []*api.Transaction {
	out := make([]*api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = toAPITransaction(t)
	}
	return out
}

func toAPICategory(c *models.Category) *api.Category {
	return &api.Category{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		Color:       c.Color,
	}
}

func toAPICategoryTotals(totals []report.CategoryTotal) []*api.CategoryTotal {
	out := make([]*api.CategoryTotal, len(totals))
	for i, ct := range totals {
		out[i] = &api.CategoryTotal{
			CategoryID: ct.CategoryID,
			Name:       ct.Name,
			Amount:     ct.Amount,
			Share:      ct.Share,
		}
	}
	return out
}

func toAPIFamily(f *models.Family, members []*models.FamilyMember) *api.Family {
	out := &api.Family{ID: f.ID, Name: f.Name, OwnerID: f.OwnerID, Members: make([]*api.FamilyMember, len(members))}
	for i, m := range members {
		out.Members[i] = toAPIMember(m)
	}
	return out
}

func toAPIMember(m *models.FamilyMember) *api.FamilyMember {
	return &api.FamilyMember{ID: m.ID, Name: m.Name, Relationship: m.Relationship, ProfileID: m.ProfileID}
}

func toAPIAsset(a *models.Asset) *api.Asset {
	return &api.Asset{
		ID:         a.ID,
		Name:       a.Name,
		Kind:       a.Kind,
		Value:      a.Value,
		AcquiredAt: formatOptionalDate(a.AcquiredAt),
	}
}

func toAPILiability(l *models.Liability) *api.Liability {
	return &api.Liability{
		ID:           l.ID,
		Name:         l.Name,
		Kind:         l.Kind,
		Balance:      l.Balance,
		InterestRate: l.InterestRate,
		DueDate:      formatOptionalDate(l.DueDate),
	}
}

func toAPISubscription(s *models.Subscription) *api.Subscription {
	if s == nil {
		return nil
	}
	return &api.Subscription{
		UserID:           s.UserID,
		Plan:             s.Plan,
		Status:           s.Status,
		TrialEnd:         optionalUnix(s.TrialEnd),
		CurrentPeriodEnd: optionalUnix(s.CurrentPeriodEnd),
		UpdatedAt:        s.UpdatedAt,
	}
}

func toAPIAccess(d access.Decision) *api.Access {
	out := &api.Access{Granted: d.Granted, Reason: d.Reason}
	if !d.Until.IsZero() {
		out.Until = d.Until.Unix()
	}
	return out
}

func toAPISuggestion(s *models.TransactionSuggestion) *api.Suggestion {
	return &api.Suggestion{
		ID:                   s.ID,
		TransactionID:        s.TransactionID,
		Kind:                 s.Kind,
		RelatedTransactionID: s.RelatedTransactionID,
		CategoryID:           s.CategoryID,
		Confidence:           s.Confidence,
		Reason:               s.Reason,
		Status:               s.Status,
		CreatedAt:            s.CreatedAt,
	}
}

func toAPIPattern(p *models.TransactionPattern) *api.Pattern {
	return &api.Pattern{
		ID:                  p.ID,
		Description:         p.Description,
		Amount:              p.Amount,
		Type:                p.Type,
		Frequency:           p.Frequency,
		Occurrences:         p.Occurrences,
		AverageIntervalDays: p.AverageIntervalDays,
		LastDate:            formatDate(p.LastDate),
		NextExpectedDate:    formatDate(p.NextExpectedDate),
	}
}

func toAPIReport(r *models.Report) *api.Report {
	return &api.Report{
		ID:          r.ID,
		PeriodStart: formatDate(r.PeriodStart),
		PeriodEnd:   formatDate(r.PeriodEnd),
		Income:      r.Income,
		Expense:     r.Expense,
		Narrative:   r.Narrative,
		CreatedAt:   r.CreatedAt,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(api.DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func optionalUnix(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

func fromOptionalUnix(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

// parseDate reads a "YYYY-MM-DD" field; empty returns fallback.
func parseDate(field, s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	d, err := time.Parse(api.DateLayout, s)
	if err != nil {
		return time.Time{}, invalidArgument("%s must be YYYY-MM-DD, got %q", field, s)
	}
	return d, nil
}

// parseOptionalDate reads a "YYYY-MM-DD" field; empty returns nil.
func parseOptionalDate(field, s string) (*time.Time, error) {
	d, err := parseDate(field, s, time.Time{})
	if err != nil || d.IsZero() {
		return nil, err
	}
	return &d, nil
}

// monthBounds returns the first and last day of now's month.
func monthBounds(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
