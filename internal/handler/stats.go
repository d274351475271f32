package handler

import (
	"net/http"
	"strconv"
	"time"

	"customer-ledger/internal/ledger"
	"customer-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves the month/year aggregation endpoints.
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

// GetMonthlyStats returns the twelve-month table for a year, defaulting
// to the newest year present in the data (or the current one when there
// is no data).
func (h *StatsHandler) GetMonthlyStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := loadEntries(h.DB, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entries")
		return
	}

	year := 0
	if yearStr := c.Query("year"); yearStr != "" {
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "year must be a number")
			return
		}
	} else if years := ledger.AvailableYears(entries); len(years) > 0 {
		year = years[0]
	} else {
		year = time.Now().Year()
	}

	util.Success(c, util.Response{
		"year":   year,
		"months": ledger.ByMonth(entries, year),
	})
}

// GetYearlyStats returns one bucket per distinct year, ascending.
func (h *StatsHandler) GetYearlyStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := loadEntries(h.DB, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entries")
		return
	}

	util.Success(c, util.Response{
		"years": ledger.ByYear(entries),
	})
}

// GetAvailableYears returns the distinct years present, newest first.
func (h *StatsHandler) GetAvailableYears(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := loadEntries(h.DB, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entries")
		return
	}

	util.Success(c, util.Response{
		"years": ledger.AvailableYears(entries),
	})
}
