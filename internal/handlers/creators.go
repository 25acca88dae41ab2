// ===============================
// internal/handlers/creators.go - Creator call and income reports
// ===============================

package handlers

import (
	"net/http"
	"time"

	"himadash/internal/query"
	"himadash/internal/services"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	service *services.CreatorService
	users   *services.UserService
}

func NewCreatorHandler(service *services.CreatorService, users *services.UserService) *CreatorHandler {
	return &CreatorHandler{service: service, users: users}
}

func (h *CreatorHandler) GetCreatorsIncome(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	sortBy := services.IncomeSort.Key(c.Query("sortBy"))
	sortOrder := query.ParseOrder(c.Query("sortOrder"))
	search := c.Query("search")
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")

	creators, total, err := h.service.Income(c.Request.Context(), lp, sortBy, sortOrder, search, dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch creators income"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators":   creators,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"search":   search,
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
		},
		"sorting": query.Sorting{SortBy: sortBy, SortOrder: sortOrder},
		"summary": services.SummarizeIncome(creators, total),
	})
}

func (h *CreatorHandler) GetCreatorsAvgCallTime(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	sortBy := services.CallTimeSort.Key(c.Query("sortBy"))
	sortOrder := query.ParseOrder(c.Query("sortOrder"))
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")
	search := c.Query("search")
	minCalls := query.ParseInt(c.Query("minCalls"), 1, 1)

	creators, total, err := h.service.AvgCallTime(c.Request.Context(), lp, sortBy, sortOrder, dateFrom, dateTo, search, minCalls)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch creators call time"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators":   creators,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
			"minCalls": minCalls,
			"search":   search,
		},
		"sorting": query.Sorting{SortBy: sortBy, SortOrder: sortOrder},
	})
}

func (h *CreatorHandler) GetCreatorsFTUCalls(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	sortBy := services.FTUSort.Key(c.Query("sortBy"))
	sortOrder := query.ParseOrder(c.Query("sortOrder"))
	filters := services.FTUFilters{
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		Search:   c.Query("search"),
		MinCalls: query.ParseInt(c.Query("minCalls"), 1, 1),
		Language: c.Query("language"),
		CallType: c.Query("type"),
	}

	creators, total, err := h.service.FTUCalls(c.Request.Context(), lp, sortBy, sortOrder, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FTU calls"})
		return
	}

	languages, err := h.users.Languages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch languages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators":   creators,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"dateFrom": filters.DateFrom,
			"dateTo":   filters.DateTo,
			"search":   filters.Search,
			"minCalls": filters.MinCalls,
			"language": filters.Language,
			"type":     filters.CallType,
		},
		"sorting":   query.Sorting{SortBy: sortBy, SortOrder: sortOrder},
		"languages": languages,
	})
}

func (h *CreatorHandler) GetCreatorsWeeklyAvg(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	sortBy := services.WeeklyAvgSort.Key(c.Query("sortBy"))
	sortOrder := query.ParseOrder(c.Query("sortOrder"))
	search := c.Query("search")
	minCalls := query.ParseInt(c.Query("minCalls"), 1, 1)

	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")
	week := c.Query("week")
	if dateFrom == "" && dateTo == "" {
		if week != "current" && week != "last" {
			week = "current"
		}
		dateFrom, dateTo = services.WeekRange(time.Now(), week)
	}

	creators, total, err := h.service.WeeklyAvg(c.Request.Context(), lp, sortBy, sortOrder, dateFrom, dateTo, search, minCalls)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weekly averages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators":   creators,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"week":     week,
			"dateFrom": dateFrom,
			"dateTo":   dateTo,
			"minCalls": minCalls,
			"search":   search,
		},
		"sorting": query.Sorting{SortBy: sortBy, SortOrder: sortOrder},
	})
}

func (h *CreatorHandler) GetInactiveCreators(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	days := services.NormalizeInactiveDays(query.ParseInt(c.Query("days"), 7, 1))
	language := c.Query("language")

	creators, total, err := h.service.InactiveCreators(c.Request.Context(), lp, days, language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inactive creators"})
		return
	}

	languages, err := h.users.Languages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch languages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creators":   creators,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"days":     days,
			"language": language,
		},
		"languages": languages,
	})
}
