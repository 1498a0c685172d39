package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardsbot/internal/jobs"
	"rewardsbot/internal/services"
	"rewardsbot/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.AccountStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts := store.New(filepath.Join(t.TempDir(), "snapshot.json"))
	scheduler := jobs.NewScheduler()
	t.Cleanup(scheduler.Stop)

	handler := NewAdminHandler(services.NewStatsService(accounts), accounts, scheduler)

	router := gin.New()
	router.GET("/admin/stats", handler.GetStats)
	router.GET("/admin/accounts/:id", handler.GetAccount)
	return router, accounts
}

func TestGetStats(t *testing.T) {
	router, accounts := newTestRouter(t)
	accounts.Mutate(func(tx *store.Tx) bool {
		account, _ := tx.GetOrCreate(1, "Ada")
		account.Verified = true
		account.Balance = 5000
		return true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Stats        services.Stats `json:"stats"`
		PendingTasks int            `json:"pending_tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Stats.TotalAccounts)
	assert.Equal(t, int64(5000), body.Stats.TotalBalance)
	assert.Equal(t, 0, body.PendingTasks)
}

func TestGetAccount(t *testing.T) {
	router, accounts := newTestRouter(t)
	accounts.Mutate(func(tx *store.Tx) bool {
		tx.GetOrCreate(42, "Ada")
		return true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/accounts/42", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"first_name":"Ada"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/accounts/999", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/accounts/abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
