package httpapi

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/ai"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

// SecretTokenHeader carries the shared secret set when registering the webhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// update is the subset of a Telegram Update the webhook reads.
type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64 `json:"message_id"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// reply is answered inline; Telegram executes it as a sendMessage call.
type reply struct {
	Method string `json:"method"`
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func ignored(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ignored"})
}

func (h *handler) messagingWebhook(c *gin.Context) {
	if h.processor == nil || h.webhookSecret == "" {
		fail(c, http.StatusServiceUnavailable, "messaging is not configured")
		return
	}
	got := c.GetHeader(SecretTokenHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
		fail(c, http.StatusUnauthorized, "invalid secret token")
		return
	}

	var u update
	if err := c.ShouldBindJSON(&u); err != nil {
		fail(c, http.StatusBadRequest, "invalid update")
		return
	}
	if u.Message == nil || strings.TrimSpace(u.Message.Text) == "" {
		ignored(c)
		return
	}
	chatID := u.Message.Chat.ID

	ctx := c.Request.Context()
	profile, err := h.store.GetProfileByChatID(ctx, strconv.FormatInt(chatID, 10))
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("Webhook from unlinked chat", "chat_id", chatID, "update_id", u.UpdateID)
		ignored(c)
		return
	}
	if err != nil {
		slog.Error("Failed to look up chat", "chat_id", chatID, "error", err)
		fail(c, http.StatusInternalServerError, "failed to look up chat")
		return
	}

	if !profile.IsAdmin() {
		sub, err := h.store.GetSubscription(ctx, profile.ID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Error("Failed to load subscription", "user_id", profile.ID, "error", err)
			fail(c, http.StatusInternalServerError, "failed to load subscription")
			return
		}
		if !access.HasAccess(sub, h.now()) {
			c.JSON(http.StatusOK, reply{Method: "sendMessage", ChatID: chatID,
				Text: "Your subscription has ended. Renew it in the app to keep logging by message."})
			return
		}
	}

	out, err := h.processor.Process(ctx, profile.ID, ai.Input{Kind: ai.KindText, Text: u.Message.Text}, models.SourceMessaging)
	var text string
	switch {
	case errors.Is(err, ai.ErrNoTransaction):
		text = "I couldn't find an amount in that message. Try something like \"coffee 4.50\"."
	case err != nil:
		slog.Error("Webhook processing failed", "user_id", profile.ID, "error", err)
		text = "Sorry, I couldn't process that right now. Please try again later."
	default:
		text = describeOutcome(out)
	}
	c.JSON(http.StatusOK, reply{Method: "sendMessage", ChatID: chatID, Text: text})
}

func describeOutcome(out *ai.Outcome) string {
	t := out.Transaction
	entry := fmt.Sprintf("%s %s for %s on %s", t.Type, t.Amount.StringFixed(2), t.Description, t.Date.Format("Jan 2"))
	if out.Inserted {
		return "Saved " + entry + "."
	}
	return "I read " + entry + ". Open the app to confirm it."
}
