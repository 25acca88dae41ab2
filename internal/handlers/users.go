// ===============================
// internal/handlers/users.go - User listing and dashboard stats
// ===============================

package handlers

import (
	"net/http"

	"himadash/internal/query"
	"himadash/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	lp := query.ParseList(c.Query("page"), c.Query("limit"), 20, 200)
	sortBy := services.UserSort.Key(c.Query("sortBy"))
	sortOrder := query.ParseOrder(c.Query("sortOrder"))
	filters := services.UserListFilters{
		Search: c.Query("search"),
		Gender: c.Query("gender"),
		Status: c.Query("status"),
	}

	users, total, err := h.service.List(c.Request.Context(), lp, sortBy, sortOrder, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": query.NewPagination(lp, total),
		"filters": gin.H{
			"search": filters.Search,
			"gender": filters.Gender,
			"status": filters.Status,
		},
		"sorting": query.Sorting{SortBy: sortBy, SortOrder: sortOrder},
	})
}

func (h *UserHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
