package api

import "github.com/shopspring/decimal"

type ProcessTextRequest struct {
	Text string `json:"text"`
}

// ProcessAudioRequest carries a voice note; Data is base64 on the wire.
type ProcessAudioRequest struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mimeType"`
}

// ProcessImageRequest carries a receipt photo or screenshot.
type ProcessImageRequest struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mimeType"`
}

// ProcessResponse is shared by the three Process calls. When Inserted is
// false the draft should be shown to the user and sent back via ConfirmDraft.
type ProcessResponse struct {
	Transaction       *Transaction `json:"transaction"`
	CategoryName      string       `json:"categoryName,omitempty"`
	Confidence        float64      `json:"confidence"`
	Inserted          bool         `json:"inserted"`
	NeedsConfirmation bool         `json:"needsConfirmation"`
	Transcript        string       `json:"transcript,omitempty"`
}

type ConfirmDraftRequest struct {
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           string          `json:"date,omitempty"`
	CategoryID     string          `json:"categoryId,omitempty"`
	FamilyMemberID string          `json:"familyMemberId,omitempty"`
}

type ConfirmDraftResponse struct {
	Transaction *Transaction `json:"transaction"`
}
