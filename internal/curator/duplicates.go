package curator

import (
	"sort"
	"strings"
	"time"

	"github.com/mmynk/famledger/internal/models"
)

// DuplicateWindow is how far apart two entries may be and still count as duplicates.
const DuplicateWindow = 3 * 24 * time.Hour

// DuplicatePair links a later transaction to the earlier one it repeats.
type DuplicatePair struct {
	Original  *models.Transaction
	Duplicate *models.Transaction
}

// normalize is the description key used for matching.
func normalize(desc string) string {
	return strings.ToLower(strings.TrimSpace(desc))
}

// sameEntry reports whether a and b have equal amount, type and description.
func sameEntry(a, b *models.Transaction) bool {
	return a.Type == b.Type &&
		a.Amount.Equal(b.Amount) &&
		normalize(a.Description) == normalize(b.Description)
}

// FindDuplicates flags transactions that repeat an earlier one within
// DuplicateWindow. Each duplicate is reported once, against its earliest
// match; a flagged row can still be the original for a later repeat.
func FindDuplicates(txns []*models.Transaction) []DuplicatePair {
	sorted := make([]*models.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].CreatedAt < sorted[j].CreatedAt
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	flagged := make(map[string]bool)
	var pairs []DuplicatePair
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			if b.Date.Sub(a.Date) > DuplicateWindow {
				break
			}
			if flagged[b.ID] || !sameEntry(a, b) {
				continue
			}
			flagged[b.ID] = true
			pairs = append(pairs, DuplicatePair{Original: a, Duplicate: b})
		}
	}
	return pairs
}
