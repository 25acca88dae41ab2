// ===============================
// internal/handlers/retention.go - Payer retention reports
// ===============================

package handlers

import (
	"net/http"

	"himadash/internal/query"
	"himadash/internal/services"

	"github.com/gin-gonic/gin"
)

type RetentionHandler struct {
	service *services.RetentionService
}

func NewRetentionHandler(service *services.RetentionService) *RetentionHandler {
	return &RetentionHandler{service: service}
}

func (h *RetentionHandler) GetUserRetention(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	sortBy := services.RetentionSort.Key(c.Query("sortBy"))
	sortOrder := query.ParseOrder(c.Query("sortOrder"))
	search := c.Query("search")
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")

	users, total, err := h.service.UserRetention(c.Request.Context(), lp, sortBy, sortOrder, search, dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user retention"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"search":   search,
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
		},
		"sorting": query.Sorting{SortBy: sortBy, SortOrder: sortOrder},
		"summary": services.SummarizeRetention(users, total),
	})
}

func (h *RetentionHandler) GetRetentionTrends(c *gin.Context) {
	filters := services.TrendFilters{
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		RegFrom:  c.Query("regFrom"),
		RegTo:    c.Query("regTo"),
		GroupBy:  c.Query("groupBy"),
	}

	result, err := h.service.RetentionTrends(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch retention trends"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trends":          result.Trends,
		"retention":       result.Retention,
		"userBreakdown":   result.UserBreakdown,
		"registeredCount": result.RegisteredCount,
		"filters": gin.H{
			"dateFrom": filters.DateFrom,
			"dateTo":   filters.DateTo,
			"regFrom":  filters.RegFrom,
			"regTo":    filters.RegTo,
			"groupBy":  filters.GroupBy,
		},
	})
}

func (h *RetentionHandler) GetRegistrationsVsPayers(c *gin.Context) {
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")

	rows, err := h.service.RegistrationsVsPayers(c.Request.Context(), dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations vs payers"})
		return
	}

	totalRegistrations := 0
	totalPayers := 0
	for _, row := range rows {
		totalRegistrations += row.Registrations
		totalPayers += row.Payers
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"filters": gin.H{
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
		},
		"summary": gin.H{
			"totalDays":          len(rows),
			"totalRegistrations": totalRegistrations,
			"totalPayers":        totalPayers,
		},
	})
}

func (h *RetentionHandler) GetRepeatPayersByTime(c *gin.Context) {
	date := c.Query("date")

	result, err := h.service.RepeatPayersByTime(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch repeat payers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result.Points,
		"summary": gin.H{
			"totalPayments":  result.TotalPayments,
			"repeatPayments": result.RepeatPayments,
			"repeatPayers":   result.RepeatPayers,
		},
		"filters": gin.H{"date": date},
	})
}

func (h *RetentionHandler) GetRegistrationsPaidByLanguage(c *gin.Context) {
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")

	rows, err := h.service.RegistrationsPaidByLanguage(c.Request.Context(), dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations by language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"filters": gin.H{
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
		},
	})
}

func (h *RetentionHandler) GetCreatorIncomeRetention(c *gin.Context) {
	regFrom := c.Query("regFrom")

	result, err := h.service.CreatorIncomeRetention(c.Request.Context(), regFrom)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch creator income retention"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trends":          result.Trends,
		"retention":       result.Retention,
		"registeredCount": result.RegisteredCount,
		"filters":         gin.H{"regFrom": regFrom},
	})
}
