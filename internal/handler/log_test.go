package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"customer-ledger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestListLogsConfiguredPageSize(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")

	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.AuditLog{
			UserID: &user.ID,
			Path:   fmt.Sprintf("/api/entries/%d", i),
			Method: "POST",
		}).Error)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	})
	// page size 5 comes from configuration, not the request
	r.GET("/api/logs", NewLogHandler(db, "", 5).ListLogs)

	w, env := doJSON(t, r, http.MethodGet, "/api/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Items []json.RawMessage `json:"items"`
		Total int64             `json:"total"`
		Size  int               `json:"size"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &data))
	require.EqualValues(t, 7, data.Total)
	require.Equal(t, 5, data.Size)
	require.Len(t, data.Items, 5)

	// an explicit page_size still wins
	w, env = doJSON(t, r, http.MethodGet, "/api/logs?page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env["data"], &data))
	require.Len(t, data.Items, 2)
}
