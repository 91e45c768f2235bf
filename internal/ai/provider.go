// Package ai turns free-form user input (chat text, voice notes, receipt
// photos) into transactions by delegating extraction to an external model.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/metrics"
	"github.com/mmynk/famledger/internal/models"
)

// Kind identifies the input modality.
type Kind string

const (
	KindText  Kind = "text"
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

var (
	// ErrEmptyInput is returned when there is nothing to send to the provider.
	ErrEmptyInput = errors.New("input is empty")
	// ErrNoTransaction is returned when the model found no usable transaction.
	ErrNoTransaction = errors.New("no transaction found in input")
)

// ProviderError wraps a failed call to the AI backend, as opposed to a
// local storage failure.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Input is one user message.
type Input struct {
	Kind Kind
	// Text is set for KindText.
	Text string
	// Data and MIMEType are set for KindAudio and KindImage.
	Data     []byte
	MIMEType string
}

// Validate checks that the fields for Kind are present.
func (in Input) Validate() error {
	switch in.Kind {
	case KindText:
		if in.Text == "" {
			return ErrEmptyInput
		}
	case KindAudio, KindImage:
		if len(in.Data) == 0 || in.MIMEType == "" {
			return ErrEmptyInput
		}
	default:
		return errors.New("unknown input kind: " + string(in.Kind))
	}
	return nil
}

// Extraction is what the model read out of an Input.
type Extraction struct {
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	CategoryName string          `json:"category"`
	// Date is "YYYY-MM-DD" or empty when the message did not say.
	Date       string  `json:"date"`
	Confidence float64 `json:"confidence"`
	// Transcript is the speech-to-text result for audio input.
	Transcript string `json:"transcript,omitempty"`
}

// Provider is an external model endpoint.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Extract reads one transaction out of in. categories lists the names
	// the model may choose from.
	Extract(ctx context.Context, in Input, today time.Time, categories []string) (*Extraction, error)

	// Classify picks a category for txn from categories.
	Classify(ctx context.Context, txn *models.Transaction, categories []*models.Category) (*curator.CategoryGuess, error)

	// Narrate writes prose from a prompt.
	Narrate(ctx context.Context, prompt string) (string, error)
}

// instrumented records every call in metrics.
type instrumented struct {
	Provider
	m *metrics.Metrics
}

// Instrument wraps p so that each call is counted.
func Instrument(p Provider, m *metrics.Metrics) Provider {
	if m == nil {
		return p
	}
	return &instrumented{Provider: p, m: m}
}

func (i *instrumented) Extract(ctx context.Context, in Input, today time.Time, categories []string) (*Extraction, error) {
	ex, err := i.Provider.Extract(ctx, in, today, categories)
	i.m.AIRequest(i.Name(), "extract_"+string(in.Kind), err)
	return ex, err
}

func (i *instrumented) Classify(ctx context.Context, txn *models.Transaction, categories []*models.Category) (*curator.CategoryGuess, error) {
	g, err := i.Provider.Classify(ctx, txn, categories)
	i.m.AIRequest(i.Name(), "classify", err)
	return g, err
}

func (i *instrumented) Narrate(ctx context.Context, prompt string) (string, error) {
	s, err := i.Provider.Narrate(ctx, prompt)
	i.m.AIRequest(i.Name(), "narrate", err)
	return s, err
}
