package curator

// Decision is what to do with a category suggestion.
type Decision int

const (
	// Discard drops the suggestion.
	Discard Decision = iota
	// Review queues the suggestion for the user.
	Review
	// Apply sets the category directly.
	Apply
)

func (d Decision) String() string {
	switch d {
	case Apply:
		return "apply"
	case Review:
		return "review"
	default:
		return "discard"
	}
}

// Thresholds gate category suggestions by confidence.
type Thresholds struct {
	AutoApply float64
	Review    float64
}

// DefaultThresholds applies at 0.90 and reviews from 0.70.
var DefaultThresholds = Thresholds{AutoApply: 0.90, Review: 0.70}

// Decide maps a confidence score to a Decision. Both bounds are inclusive.
func (th Thresholds) Decide(confidence float64) Decision {
	switch {
	case confidence >= th.AutoApply:
		return Apply
	case confidence >= th.Review:
		return Review
	default:
		return Discard
	}
}
