// ===============================
// internal/handlers/monitor.go - Active-creator monitor chart
// ===============================

package handlers

import (
	"net/http"

	"himadash/internal/services"

	"github.com/gin-gonic/gin"
)

type MonitorHandler struct {
	service *services.MonitorService
}

func NewMonitorHandler(service *services.MonitorService) *MonitorHandler {
	return &MonitorHandler{service: service}
}

func (h *MonitorHandler) GetActiveUsersMonitor(c *gin.Context) {
	// Echo the accepted values, not the raw request
	monitorType := services.NormalizeMonitorType(c.Query("type"))
	groupBy := services.NormalizeMonitorGroupBy(c.Query("groupBy"))
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")

	samples, err := h.service.ActiveSamples(c.Request.Context(), monitorType, groupBy, dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch active users monitor"})
		return
	}

	periods, series := services.BuildSeries(samples)

	c.JSON(http.StatusOK, gin.H{
		"periods": periods,
		"series":  series,
		"filters": gin.H{
			"type":     monitorType,
			"groupBy":  groupBy,
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
		},
	})
}
