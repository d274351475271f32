package handler

import (
	"net/http"
	"strconv"
	"strings"

	"customer-ledger/internal/ledger"
	"customer-ledger/internal/models"
	"customer-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EntryHandler serves the entry CRUD endpoints.
type EntryHandler struct {
	DB *gorm.DB
}

func NewEntryHandler(db *gorm.DB) *EntryHandler {
	return &EntryHandler{DB: db}
}

// ---------- request/response shapes ----------

type entryReq struct {
	ID           string `json:"id"` // optional, client may mint its own
	ManualDate   string `json:"manual_date"`
	CustomerName string `json:"customer_name"`
	MobileNumber string `json:"mobile_number"`
	AmountRs     int64  `json:"amount_rs"`
}

type entryResp struct {
	ID           string `json:"id"`
	ManualDate   string `json:"manual_date"`
	CustomerName string `json:"customer_name"`
	MobileNumber string `json:"mobile_number"`
	AmountRs     int64  `json:"amount_rs"`
	CreatedAt    int64  `json:"created_at"`
	Owner        uint   `json:"owner"`
}

func toEntryResp(e *models.Entry) entryResp {
	return entryResp{
		ID:           e.ID,
		ManualDate:   e.ManualDate,
		CustomerName: e.CustomerName,
		MobileNumber: e.MobileNumber,
		AmountRs:     e.AmountRs,
		CreatedAt:    e.CreatedAt,
		Owner:        e.OwnerID,
	}
}

// ToDomain converts a stored entry into its domain shape.
func ToDomain(e *models.Entry) ledger.Entry {
	return ledger.Entry{
		ID:           e.ID,
		ManualDate:   e.ManualDate,
		CustomerName: e.CustomerName,
		MobileNumber: e.MobileNumber,
		AmountRs:     e.AmountRs,
		CreatedAt:    e.CreatedAt,
	}
}

// validateEntryReq checks the request fields and writes the tagged error
// response on failure. Emptiness before format, first failure wins.
func validateEntryReq(c *gin.Context, req *entryReq) bool {
	req.ManualDate = strings.TrimSpace(req.ManualDate)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)

	if err := ledger.ValidateRequired(req.ManualDate, "Manual Date"); err != nil {
		util.ErrorKind(c, http.StatusBadRequest, util.CodeEmptyField, util.KindEmptyField, "manual_date", err.Error())
		return false
	}
	if _, ok := ledger.ParseDate(req.ManualDate); !ok {
		util.ErrorKind(c, http.StatusBadRequest, util.CodeEmptyField, util.KindEmptyField, "manual_date", "Manual Date must be a valid YYYY-MM-DD date")
		return false
	}
	if err := ledger.ValidateRequired(req.CustomerName, "Customer Name"); err != nil {
		util.ErrorKind(c, http.StatusBadRequest, util.CodeEmptyField, util.KindEmptyField, "customer_name", err.Error())
		return false
	}
	if err := ledger.ValidateMobileNumber(req.MobileNumber); err != nil {
		util.ErrorKind(c, http.StatusBadRequest, util.CodeEmptyField, util.KindEmptyField, "mobile_number", err.Error())
		return false
	}
	if req.AmountRs <= 0 {
		util.ErrorKind(c, http.StatusBadRequest, util.CodeInvalidParam, util.KindInvalidAmount, "", "Amount must be greater than 0")
		return false
	}
	return true
}

// ---------- create ----------

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if !validateEntryReq(c, &req) {
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		minted, err := util.NewEntryID()
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate id")
			return
		}
		id = minted
	}

	entry := models.Entry{
		ID:           id,
		OwnerID:      user.ID,
		ManualDate:   req.ManualDate,
		CustomerName: req.CustomerName,
		MobileNumber: req.MobileNumber,
		AmountRs:     req.AmountRs,
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save entry")
		return
	}

	util.Success(c, util.Response{
		"entry": toEntryResp(&entry),
	})
}

// ---------- update ----------

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if !validateEntryReq(c, &req) {
		return
	}

	var entry models.Entry
	if err := h.DB.First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.ErrorKind(c, http.StatusNotFound, util.CodeNotFound, util.KindNotFound, "", "entry not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entry")
		}
		return
	}

	// only the owner or an admin may mutate; owner and created-at never change
	if entry.OwnerID != user.ID && !user.IsAdmin() {
		util.ErrorKind(c, http.StatusForbidden, util.CodeForbidden, util.KindUnauthorized, "", "unauthorized: not your entry")
		return
	}

	entry.ManualDate = req.ManualDate
	entry.CustomerName = req.CustomerName
	entry.MobileNumber = req.MobileNumber
	entry.AmountRs = req.AmountRs

	if err := h.DB.Save(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save entry")
		return
	}

	util.Success(c, util.Response{
		"entry": toEntryResp(&entry),
	})
}

// ---------- delete ----------

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var entry models.Entry
	if err := h.DB.First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.ErrorKind(c, http.StatusNotFound, util.CodeNotFound, util.KindNotFound, "", "entry not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entry")
		}
		return
	}

	if entry.OwnerID != user.ID && !user.IsAdmin() {
		util.ErrorKind(c, http.StatusForbidden, util.CodeForbidden, util.KindUnauthorized, "", "unauthorized: not your entry")
		return
	}

	if err := h.DB.Delete(&entry).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete entry")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// ---------- list ----------

// ListEntries returns the user's entries newest-first by creation time,
// with optional date-range and search filters plus summary totals.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	base := h.DB.Model(&models.Entry{}).Where("owner_id = ?", user.ID)

	// date filters operate on the strict YYYY-MM-DD manual date, which
	// sorts lexicographically
	if start := strings.TrimSpace(c.Query("start")); start != "" {
		if _, ok := ledger.ParseDate(start); !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start date must be YYYY-MM-DD")
			return
		}
		base = base.Where("manual_date >= ?", start)
	}
	if end := strings.TrimSpace(c.Query("end")); end != "" {
		if _, ok := ledger.ParseDate(end); !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end date must be YYYY-MM-DD")
			return
		}
		base = base.Where("manual_date <= ?", end)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		base = base.Where("customer_name LIKE ? OR mobile_number LIKE ?", like, like)
	}

	var entries []models.Entry
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list entries")
		return
	}

	items := make([]entryResp, 0, len(entries))
	var totalAmount int64
	for i := range entries {
		items = append(items, toEntryResp(&entries[i]))
		totalAmount += entries[i].AmountRs
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
		"summary": gin.H{
			"total_amount": totalAmount,
			"total_amount_rs": strconv.FormatInt(totalAmount, 10),
		},
	})
}

// loadEntries fetches all of a user's entries as domain values, used by
// the export and stats endpoints.
func loadEntries(db *gorm.DB, userID uint) ([]ledger.Entry, error) {
	var rows []models.Entry
	if err := db.Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, ToDomain(&rows[i]))
	}
	return entries, nil
}
