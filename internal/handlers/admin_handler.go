package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rewardsbot/internal/jobs"
	"rewardsbot/internal/services"
	"rewardsbot/internal/store"
)

// AdminHandler exposes read-only operational endpoints
type AdminHandler struct {
	statsService *services.StatsService
	store        *store.AccountStore
	scheduler    *jobs.Scheduler
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(statsService *services.StatsService, accounts *store.AccountStore, scheduler *jobs.Scheduler) *AdminHandler {
	return &AdminHandler{
		statsService: statsService,
		store:        accounts,
		scheduler:    scheduler,
	}
}

// GetStats returns aggregate account totals and pending deferred tasks
func (h *AdminHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats":         h.statsService.Collect(),
		"pending_tasks": h.scheduler.Pending(),
	})
}

// GetAccount returns a single account by identity
func (h *AdminHandler) GetAccount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid account id",
		})
		return
	}

	account, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Account not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": account,
	})
}
