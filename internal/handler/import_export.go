package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"customer-ledger/internal/ledger"
	"customer-ledger/internal/models"
	"customer-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImportExportHandler serves the bulk import and the export surfaces.
type ImportExportHandler struct {
	DB *gorm.DB
}

func NewImportExportHandler(db *gorm.DB) *ImportExportHandler {
	return &ImportExportHandler{DB: db}
}

// ---------- import ----------

// ImportEntries accepts a .csv or .xlsx upload. A genuine workbook (zip
// magic) goes through the excelize path; anything else, including
// CSV-renamed-to-xlsx files, is parsed as delimited text. Valid rows are
// created one at a time, best-effort: a failed insert is counted and
// logged, not rolled back, and does not stop later rows.
func (h *ImportExportHandler) ImportEntries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing file upload")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "only .csv and .xlsx files are supported")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "failed to open upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to read upload")
		return
	}

	var result *ledger.ImportResult
	if ledger.IsXLSX(data) {
		result, err = ledger.ParseXLSX(data)
	} else {
		result, err = ledger.Parse(string(data))
	}
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrEmptyFile):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file is empty")
		case errors.Is(err, ledger.ErrNoRecognizedColumns):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no recognized columns in header")
		case errors.Is(err, ledger.ErrNoDataRows):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no data rows in file")
		default:
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, fmt.Sprintf("failed to parse file: %v", err))
		}
		return
	}

	// sequential fold over valid rows; partial success is expected, not
	// a bug
	succeeded, failed := 0, 0
	for _, row := range result.ValidRows {
		id, err := util.NewEntryID()
		if err != nil {
			failed++
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row.AmountRs), 64)
		if err != nil {
			failed++
			continue
		}
		// whole rupees; a fractional amount that truncates to zero would
		// slip past the positive-amount rule
		if int64(amount) <= 0 {
			failed++
			continue
		}
		entry := models.Entry{
			ID:           id,
			OwnerID:      user.ID,
			ManualDate:   strings.TrimSpace(row.ManualDate),
			CustomerName: strings.TrimSpace(row.CustomerName),
			MobileNumber: strings.TrimSpace(row.MobileNumber),
			AmountRs:     int64(amount),
		}
		if err := h.DB.Create(&entry).Error; err != nil {
			log.Printf("import: create entry for row %q failed: %v", row.CustomerName, err)
			failed++
			continue
		}
		succeeded++
	}

	util.Success(c, util.Response{
		"succeeded": succeeded,
		"failed":    failed,
		"errors":    result.Errors,
	})
}

// ---------- exports ----------

// exportEntries loads the user's entries and writes the rendered bytes,
// translating the empty-list failure before any render work.
func (h *ImportExportHandler) export(c *gin.Context, contentType, filename string,
	render func([]ledger.Entry, time.Time) ([]byte, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := loadEntries(h.DB, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entries")
		return
	}

	data, err := render(entries, time.Now())
	if err != nil {
		if errors.Is(err, ledger.ErrNoEntries) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no entries to export")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		}
		return
	}

	c.Header("Content-Type", contentType)
	if filename != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	c.Data(http.StatusOK, contentType, data)
}

// ExportCSV serves plain comma-delimited text.
func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
	h.export(c, "text/csv; charset=utf-8", "entries.csv", ledger.RenderCSV)
}

// ExportExcelCSV serves the Excel compatibility surface: the same CSV
// with a UTF-8 BOM, always under a .csv filename regardless of the
// requested format.
func (h *ImportExportHandler) ExportExcelCSV(c *gin.Context) {
	h.export(c, "text/csv; charset=utf-8", "entries.csv", ledger.RenderExcelCSV)
}

// ExportXLSX serves a genuine workbook.
func (h *ImportExportHandler) ExportXLSX(c *gin.Context) {
	h.export(c,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"entries.xlsx", ledger.RenderXLSX)
}

// ExportText serves the fixed-width table.
func (h *ImportExportHandler) ExportText(c *gin.Context) {
	h.export(c, "text/plain; charset=utf-8", "entries.txt",
		func(entries []ledger.Entry, now time.Time) ([]byte, error) {
			return ledger.RenderText(entries, "Customer Entries", now)
		})
}

// ExportPrint serves the printable HTML document, rendered inline so the
// browser can paginate and print it to PDF.
func (h *ImportExportHandler) ExportPrint(c *gin.Context) {
	h.export(c, "text/html; charset=utf-8", "",
		func(entries []ledger.Entry, now time.Time) ([]byte, error) {
			return ledger.RenderHTML(entries, "Customer Entries", now)
		})
}
