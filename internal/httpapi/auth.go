package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/famledger/internal/access"
	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/middleware"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

const claimsKey = "claims"

// requireUser validates the Bearer token. Downloads started from a link
// cannot set headers, so ?token= is accepted too.
func (h *handler) requireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := c.Query("token"); token != "" {
			header = "Bearer " + token
		}
	}
	claims, err := h.jwt.ValidateHeader(header)
	if err != nil {
		fail(c, http.StatusUnauthorized, err.Error())
		return
	}
	c.Set(claimsKey, claims)
	c.Next()
}

func (h *handler) requireSubscription(c *gin.Context) {
	claims := c.MustGet(claimsKey).(*auth.Claims)
	if claims.Role == models.RoleAdmin {
		admin, err := middleware.StoredAdmin(c.Request.Context(), h.store, claims.UserID)
		if err != nil {
			slog.Error("Failed to load profile", "user_id", claims.UserID, "error", err)
			fail(c, http.StatusInternalServerError, "failed to load profile")
			return
		}
		if admin {
			c.Next()
			return
		}
	}

	sub, err := h.store.GetSubscription(c.Request.Context(), claims.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Failed to load subscription", "user_id", claims.UserID, "error", err)
		fail(c, http.StatusInternalServerError, "failed to load subscription")
		return
	}
	if d := access.Evaluate(sub, h.now()); !d.Granted {
		fail(c, http.StatusForbidden, "an active subscription or trial is required ("+d.Reason+")")
		return
	}
	c.Next()
}
