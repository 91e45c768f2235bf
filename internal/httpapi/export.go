package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/report"
	"github.com/mmynk/famledger/internal/storage"
	"github.com/mmynk/famledger/pkg/api"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *handler) exportCSV(c *gin.Context) {
	txns, cats, ok := h.loadExport(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", h.attachment("csv"))
	if err := report.WriteCSV(c.Writer, txns, cats); err != nil {
		slog.Error("CSV export failed", "error", err)
	}
}

func (h *handler) exportXLSX(c *gin.Context) {
	txns, cats, ok := h.loadExport(c)
	if !ok {
		return
	}
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", h.attachment("xlsx"))
	if err := report.WriteXLSX(c.Writer, txns, cats); err != nil {
		slog.Error("XLSX export failed", "error", err)
	}
}

func (h *handler) attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="transactions_%s.%s"`, h.now().Format("20060102"), ext)
}

// loadExport reads ?from and ?to (inclusive, optional) and loads the rows.
func (h *handler) loadExport(c *gin.Context) ([]*models.Transaction, []*models.Category, bool) {
	claims := c.MustGet(claimsKey).(*auth.Claims)

	var f storage.TransactionFilter
	if s := c.Query("from"); s != "" {
		d, err := time.Parse(api.DateLayout, s)
		if err != nil {
			fail(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return nil, nil, false
		}
		f.From = d
	}
	if s := c.Query("to"); s != "" {
		d, err := time.Parse(api.DateLayout, s)
		if err != nil {
			fail(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return nil, nil, false
		}
		f.To = d.AddDate(0, 0, 1)
	}
	if !f.From.IsZero() && !f.To.IsZero() && !f.To.After(f.From) {
		fail(c, http.StatusBadRequest, "to is before from")
		return nil, nil, false
	}

	ctx := c.Request.Context()
	txns, err := h.store.ListTransactions(ctx, claims.UserID, f)
	if err != nil {
		slog.Error("Export failed", "user_id", claims.UserID, "error", err)
		fail(c, http.StatusInternalServerError, "failed to load transactions")
		return nil, nil, false
	}
	cats, err := h.store.ListCategories(ctx, claims.UserID)
	if err != nil {
		slog.Error("Export failed", "user_id", claims.UserID, "error", err)
		fail(c, http.StatusInternalServerError, "failed to load categories")
		return nil, nil, false
	}

	slog.Info("Transactions exported", "user_id", claims.UserID, "rows", len(txns), "path", c.FullPath())
	return txns, cats, true
}
