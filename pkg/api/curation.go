package api

type RunCurationRequest struct{}

type RunCurationResponse struct {
	Scanned       int `json:"scanned"`
	Duplicates    int `json:"duplicates"`
	NewDuplicates int `json:"newDuplicates"`
	Patterns      int `json:"patterns"`
	Applied       int `json:"applied"`
	Queued        int `json:"queued"`
	Discarded     int `json:"discarded"`
}

type ListSuggestionsRequest struct {
	// Status defaults to pending.
	Status string `json:"status,omitempty"`
}

type ListSuggestionsResponse struct {
	Suggestions []*Suggestion `json:"suggestions"`
}

// ReviewSuggestionRequest accepts or rejects a pending suggestion. Accepting a
// category suggestion applies it; accepting a duplicate deletes the duplicate.
type ReviewSuggestionRequest struct {
	ID     string `json:"id"`
	Accept bool   `json:"accept"`
}

type ReviewSuggestionResponse struct {
	Suggestion *Suggestion `json:"suggestion"`
}

type ListPatternsRequest struct{}

type ListPatternsResponse struct {
	Patterns []*Pattern `json:"patterns"`
}
