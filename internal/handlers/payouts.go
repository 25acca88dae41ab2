// ===============================
// internal/handlers/payouts.go - Withdrawal reports
// ===============================

package handlers

import (
	"net/http"

	"himadash/internal/query"
	"himadash/internal/services"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	service *services.PayoutService
	users   *services.UserService
}

func NewPayoutHandler(service *services.PayoutService, users *services.UserService) *PayoutHandler {
	return &PayoutHandler{service: service, users: users}
}

func (h *PayoutHandler) GetCreatorsPayouts(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	sortOrder := query.ParseOrder(c.Query("sortOrder"))
	distinct := c.Query("distinct") == "1"
	filters := services.PayoutFilters{
		Search:   c.Query("search"),
		Language: c.Query("language"),
		Status:   c.Query("status"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	}

	var (
		payouts interface{}
		total   int
		sortBy  string
		err     error
	)
	if distinct {
		sortBy = services.DistinctPayoutSort.Key(c.Query("sortBy"))
		payouts, total, err = h.service.ListDistinct(c.Request.Context(), lp, sortBy, sortOrder, filters)
	} else {
		sortBy = services.PayoutSort.Key(c.Query("sortBy"))
		payouts, total, err = h.service.List(c.Request.Context(), lp, sortBy, sortOrder, filters)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payouts"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payout summary"})
		return
	}

	languages, err := h.users.Languages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch languages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payouts":    payouts,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"search":   filters.Search,
			"language": filters.Language,
			"status":   filters.Status,
			"dateFrom": filters.DateFrom,
			"dateTo":   filters.DateTo,
			"distinct": distinct,
		},
		"sorting":   query.Sorting{SortBy: sortBy, SortOrder: sortOrder},
		"summary":   summary,
		"languages": languages,
	})
}

func (h *PayoutHandler) GetOneTimePayoutCreators(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")

	creators, total, err := h.service.OneTimePayoutCreators(c.Request.Context(), lp, dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch one-time payout creators"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators":   creators,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
		},
	})
}
