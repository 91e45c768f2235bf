package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/famledger/internal/curator"
	"github.com/mmynk/famledger/internal/models"
)

const extractSystemPrompt = `You are a bookkeeping assistant for a household finance app.
Read the user's message, voice note or receipt and extract exactly one transaction.
Reply with a single JSON object and nothing else:
{"type":"expense"|"income","amount":<positive number>,"description":"<short merchant or purpose>",
 "category":"<one of the allowed categories or empty>","date":"YYYY-MM-DD or empty",
 "confidence":<0..1 how sure you are about amount and type>,"transcript":"<verbatim speech for audio, else empty>"}
If there is no transaction, reply {"amount":0,"confidence":0}.`

const classifySystemPrompt = `You classify household transactions into categories.
Reply with a single JSON object and nothing else:
{"category":"<exact name from the list>","confidence":<0..1>,"reason":"<one short sentence>"}`

const narrateSystemPrompt = `You write short, friendly monthly finance summaries for a family.
Use plain language, mention the biggest changes and one practical tip. No markdown headings.`

// extractUserPrompt builds the instruction sent alongside the user's input.
func extractUserPrompt(in Input, today time.Time, categories []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s.\n", today.Format("2006-01-02"))
	if len(categories) > 0 {
		fmt.Fprintf(&b, "Allowed categories: %s.\n", strings.Join(categories, ", "))
	}
	switch in.Kind {
	case KindText:
		fmt.Fprintf(&b, "Message: %s", in.Text)
	case KindAudio:
		b.WriteString("The attached audio is a voice note describing a transaction.")
	case KindImage:
		b.WriteString("The attached image is a receipt or bank screenshot. Use the total amount.")
	}
	return b.String()
}

func classifyUserPrompt(txn *models.Transaction, categories []*models.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transaction: %q, %s %s on %s.\nCategories:\n",
		txn.Description, txn.Type, txn.Amount.StringFixed(2), txn.Date.Format("2006-01-02"))
	for _, c := range categories {
		if c.Description != "" {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", c.Name)
		}
	}
	return b.String()
}

// stripFences removes a surrounding ```json block some models add.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func parseExtraction(raw string) (*Extraction, error) {
	var ex Extraction
	if err := json.Unmarshal([]byte(stripFences(raw)), &ex); err != nil {
		return nil, fmt.Errorf("decoding extraction: %w", err)
	}
	ex.Type = strings.ToLower(strings.TrimSpace(ex.Type))
	ex.Description = strings.TrimSpace(ex.Description)
	if ex.Confidence < 0 {
		ex.Confidence = 0
	}
	if ex.Confidence > 1 {
		ex.Confidence = 1
	}
	return &ex, nil
}

type classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// parseClassification maps the model's category name back to an ID.
// An unknown name yields a zero-confidence guess.
func parseClassification(raw string, categories []*models.Category) (*curator.CategoryGuess, error) {
	var c classification
	if err := json.Unmarshal([]byte(stripFences(raw)), &c); err != nil {
		return nil, fmt.Errorf("decoding classification: %w", err)
	}
	cat := findCategory(categories, c.Category, "")
	if cat == nil {
		return &curator.CategoryGuess{Reason: c.Reason}, nil
	}
	return &curator.CategoryGuess{CategoryID: cat.ID, Confidence: c.Confidence, Reason: c.Reason}, nil
}

// findCategory matches by case-insensitive name, restricted to typ when set.
func findCategory(categories []*models.Category, name, typ string) *models.Category {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, c := range categories {
		if typ != "" && c.Type != typ {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}
