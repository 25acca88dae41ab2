// ===============================
// internal/handlers/report.go - Daily report trigger and client error sink
// ===============================

package handlers

import (
	"errors"
	"net/http"

	"himadash/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports  *services.ReportService
	errorLog *services.ClientErrorLog
}

func NewReportHandler(reports *services.ReportService, errorLog *services.ClientErrorLog) *ReportHandler {
	return &ReportHandler{reports: reports, errorLog: errorLog}
}

func (h *ReportHandler) SendDailyReport(c *gin.Context) {
	text, err := h.reports.SendDailyReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoWebhook) {
			c.JSON(http.StatusOK, gin.H{"ok": false, "message": "SLACK_WEBHOOK_URL not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "message": "Failed to send daily report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "text": text})
}

func (h *ReportHandler) ReportClientError(c *gin.Context) {
	var payload services.ClientError
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.UserAgent == "" {
		payload.UserAgent = c.Request.UserAgent()
	}

	id := h.errorLog.Report(payload)

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
