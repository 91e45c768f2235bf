package curator

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/famledger/internal/models"
)

const (
	// MinOccurrences is the smallest group that can form a pattern.
	MinOccurrences = 3

	// IntervalTolerance is how far, in days, each interval may stray from the mean.
	IntervalTolerance = 5.0
)

var frequencies = []struct {
	label string
	days  float64
}{
	{models.FrequencyWeekly, 7},
	{models.FrequencyBiweekly, 14},
	{models.FrequencyMonthly, 30},
}

// Pattern is a detected recurring group.
type Pattern struct {
	// Key is the normalized description the group was matched on.
	Key                 string
	// Description is the most recent spelling, for display.
	Description         string
	Amount              decimal.Decimal
	Type                string
	Frequency           string
	AverageIntervalDays float64
	LastDate            time.Time
	NextExpectedDate    time.Time
	Transactions        []*models.Transaction
}

type groupKey struct {
	desc   string
	amount string
	typ    string
}

// FindRecurring groups transactions by description, amount and type and
// returns the groups whose spacing is regular enough to be a subscription,
// bill or paycheck. Patterns are ordered by description.
func FindRecurring(txns []*models.Transaction) []Pattern {
	groups := make(map[groupKey][]*models.Transaction)
	var keys []groupKey
	for _, t := range txns {
		k := groupKey{desc: normalize(t.Description), amount: t.Amount.String(), typ: t.Type}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], t)
	}

	var patterns []Pattern
	for _, k := range keys {
		group := groups[k]
		if len(group) < MinOccurrences {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		mean, ok := regularInterval(group)
		if !ok {
			continue
		}

		last := group[len(group)-1].Date
		patterns = append(patterns, Pattern{
			Key:                 k.desc,
			Description:         strings.TrimSpace(group[len(group)-1].Description),
			Amount:              group[0].Amount,
			Type:                k.typ,
			Frequency:           nearestFrequency(mean),
			AverageIntervalDays: mean,
			LastDate:            last,
			NextExpectedDate:    last.AddDate(0, 0, int(math.Round(mean))),
			Transactions:        group,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool { return patterns[i].Key < patterns[j].Key })
	return patterns
}

// regularInterval returns the mean gap in days between date-sorted entries
// and whether every gap lies within IntervalTolerance of it.
func regularInterval(sorted []*models.Transaction) (float64, bool) {
	intervals := make([]float64, 0, len(sorted)-1)
	var sum float64
	for i := 1; i < len(sorted); i++ {
		d := sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
		intervals = append(intervals, d)
		sum += d
	}
	mean := sum / float64(len(intervals))
	if mean <= 0 {
		return 0, false
	}
	for _, d := range intervals {
		if math.Abs(d-mean) > IntervalTolerance {
			return 0, false
		}
	}
	return mean, true
}

// nearestFrequency picks the label whose period is closest to days.
// Ties resolve to the shorter period.
func nearestFrequency(days float64) string {
	best := frequencies[0]
	for _, f := range frequencies[1:] {
		if math.Abs(days-f.days) < math.Abs(days-best.days) {
			best = f
		}
	}
	return best.label
}
