package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"customer-ledger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a throwaway SQLite database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Entry{}, &models.Session{},
		&models.AuditLog{}, &models.Backup{},
	))
	return db
}

// testRouter wires the entry routes behind a stub auth layer that
// injects the given user.
func testRouter(db *gorm.DB, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set("currentUser", user)
		}
		c.Next()
	})

	eh := NewEntryHandler(db)
	r.POST("/api/entries", eh.CreateEntry)
	r.GET("/api/entries", eh.ListEntries)
	r.PUT("/api/entries/:id", eh.UpdateEntry)
	r.DELETE("/api/entries/:id", eh.DeleteEntry)

	ieh := NewImportExportHandler(db)
	r.POST("/api/entries/import", ieh.ImportEntries)
	r.GET("/api/export/csv", ieh.ExportCSV)

	sh := NewStatsHandler(db)
	r.GET("/api/stats/monthly", sh.GetMonthlyStats)

	return r
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(u).Error)
	return u
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func entryBody(date, name, mobile string, amount int64) map[string]interface{} {
	return map[string]interface{}{
		"manual_date":   date,
		"customer_name": name,
		"mobile_number": mobile,
		"amount_rs":     amount,
	}
}

func TestCreateAndListEntries(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	r := testRouter(db, user)

	// server mints an id when the client sends none
	w, _ := doJSON(t, r, http.MethodPost, "/api/entries",
		entryBody("2024-06-10", "Jane", "1234567890", 500))
	require.Equal(t, http.StatusOK, w.Code)

	// client-minted id is kept
	body := entryBody("2024-06-11", "Ravi", "9876543210", 1200)
	body["id"] = "1718000000000-client"
	w, _ = doJSON(t, r, http.MethodPost, "/api/entries", body)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(t, r, http.MethodGet, "/api/entries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Items []struct {
			ID           string `json:"id"`
			CustomerName string `json:"customer_name"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &data))
	require.Equal(t, 2, data.Total)
	// newest first by creation time
	require.Equal(t, "1718000000000-client", data.Items[0].ID)
	require.Equal(t, "Ravi", data.Items[0].CustomerName)
	require.NotEmpty(t, data.Items[1].ID)
}

func TestCreateEntryValidationMessages(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	r := testRouter(db, user)

	cases := []struct {
		name    string
		body    map[string]interface{}
		kind    string
		message string
	}{
		{"missing date", entryBody("", "Jane", "1234567890", 500),
			"empty_field", "Manual Date is required"},
		{"rollover date", entryBody("2021-02-30", "Jane", "1234567890", 500),
			"empty_field", "Manual Date must be a valid YYYY-MM-DD date"},
		{"missing name", entryBody("2024-06-10", "  ", "1234567890", 500),
			"empty_field", "Customer Name is required"},
		{"short mobile", entryBody("2024-06-10", "Jane", "12345", 500),
			"empty_field", "Mobile Number must be between 10 and 15 digits"},
		{"zero amount", entryBody("2024-06-10", "Jane", "1234567890", 0),
			"invalid_amount", "Amount must be greater than 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/entries", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, `"`+tc.kind+`"`, string(env["kind"]))
			require.Equal(t, `"`+tc.message+`"`, string(env["message"]))
		})
	}
}

func TestUpdateEntryOwnership(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")

	require.NoError(t, db.Create(&models.Entry{
		ID: "e1", OwnerID: owner.ID, ManualDate: "2024-06-10",
		CustomerName: "Jane", MobileNumber: "1234567890", AmountRs: 500,
	}).Error)

	body := entryBody("2024-06-12", "Jane B", "1234567890", 700)

	// a non-owner gets the authorization failure, not a silent no-op
	r := testRouter(db, other)
	w, env := doJSON(t, r, http.MethodPut, "/api/entries/e1", body)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, `"unauthorized"`, string(env["kind"]))
	require.Contains(t, string(env["message"]), "unauthorized")

	// a missing id is not-found, distinct from not-yours
	w, env = doJSON(t, r, http.MethodPut, "/api/entries/nope", body)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `"not_found"`, string(env["kind"]))

	// the owner succeeds; owner id and created-at survive the update
	r = testRouter(db, owner)
	w, _ = doJSON(t, r, http.MethodPut, "/api/entries/e1", body)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Entry
	require.NoError(t, db.First(&stored, "id = ?", "e1").Error)
	require.Equal(t, "Jane B", stored.CustomerName)
	require.EqualValues(t, 700, stored.AmountRs)
	require.Equal(t, owner.ID, stored.OwnerID)
}

func TestDeleteEntry(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner")
	require.NoError(t, db.Create(&models.Entry{
		ID: "e1", OwnerID: owner.ID, ManualDate: "2024-06-10",
		CustomerName: "Jane", MobileNumber: "1234567890", AmountRs: 500,
	}).Error)

	r := testRouter(db, owner)
	w, _ := doJSON(t, r, http.MethodDelete, "/api/entries/e1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Entry{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	w, env := doJSON(t, r, http.MethodDelete, "/api/entries/e1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `"not_found"`, string(env["kind"]))
}

func importCSV(t *testing.T, r *gin.Engine, filename, content string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/entries/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func TestImportEntries(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	r := testRouter(db, user)

	csv := strings.Join([]string{
		"Date,Name,Mobile,Amount",
		"2024-06-10,Jane,1234567890,500",
		"2024-06-11,,9876543210,700",
		"2024-06-12,Ravi,9876543210,1200",
	}, "\n")

	w, env := importCSV(t, r, "book.csv", csv)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
		Errors    []struct {
			Row     int    `json:"row"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &data))
	require.Equal(t, 2, data.Succeeded)
	require.Equal(t, 0, data.Failed)
	require.Len(t, data.Errors, 1)
	require.Equal(t, 3, data.Errors[0].Row)
	require.Equal(t, "Customer Name is required", data.Errors[0].Message)

	var count int64
	require.NoError(t, db.Model(&models.Entry{}).Where("owner_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestImportRejectsSubRupeeAmounts(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	r := testRouter(db, user)

	// 0.5 is a positive number, but truncated to whole rupees it is
	// zero and must not be stored
	csv := strings.Join([]string{
		"Date,Name,Mobile,Amount",
		"2024-06-10,Jane,1234567890,0.5",
		"2024-06-11,Ravi,9876543210,1.5",
	}, "\n")

	w, env := importCSV(t, r, "book.csv", csv)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &data))
	require.Equal(t, 1, data.Succeeded)
	require.Equal(t, 1, data.Failed)

	var stored []models.Entry
	require.NoError(t, db.Where("owner_id = ?", user.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	require.EqualValues(t, 1, stored[0].AmountRs)
	require.Equal(t, "Ravi", stored[0].CustomerName)
}

func TestImportStructuralFailures(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	r := testRouter(db, user)

	w, env := importCSV(t, r, "book.csv", "   \n\n")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `"file is empty"`, string(env["message"]))

	w, env = importCSV(t, r, "book.csv", "Foo,Bar\n1,2\n")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `"no recognized columns in header"`, string(env["message"]))

	w, env = importCSV(t, r, "book.csv", "Date,Name,Mobile,Amount\n")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `"no data rows in file"`, string(env["message"]))

	w, env = importCSV(t, r, "book.pdf", "whatever")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `"only .csv and .xlsx files are supported"`, string(env["message"]))
}

func TestExportCSVEmpty(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	r := testRouter(db, user)

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "no entries to export")
}

func TestExportCSVContent(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	require.NoError(t, db.Create(&models.Entry{
		ID: "e1", OwnerID: user.ID, ManualDate: "2024-06-10",
		CustomerName: "Jane", MobileNumber: "1234567890", AmountRs: 500,
	}).Error)
	r := testRouter(db, user)

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "entries.csv")

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Manual Date,DAYS,Customer Name,Mobile Number,Amount (Rs.),Created At", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "2024-06-10,"))
}

func TestMonthlyStats(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "asha")
	for i, date := range []string{"2024-01-05", "2024-01-20", "2024-03-01", "2023-12-31"} {
		require.NoError(t, db.Create(&models.Entry{
			ID: fmt.Sprintf("e%d", i), OwnerID: user.ID, ManualDate: date,
			CustomerName: "X", MobileNumber: "1234567890", AmountRs: 100,
		}).Error)
	}
	r := testRouter(db, user)

	w, env := doJSON(t, r, http.MethodGet, "/api/stats/monthly?year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Year   int `json:"year"`
		Months []struct {
			Month       string `json:"month"`
			TotalAmount int64  `json:"total_amount"`
			Count       int    `json:"count"`
		} `json:"months"`
	}
	require.NoError(t, json.Unmarshal(env["data"], &data))
	require.Equal(t, 2024, data.Year)
	require.Len(t, data.Months, 12)
	require.Equal(t, "January", data.Months[0].Month)
	require.EqualValues(t, 200, data.Months[0].TotalAmount)
	require.Equal(t, 2, data.Months[0].Count)
	require.EqualValues(t, 100, data.Months[2].TotalAmount)
	// the other user's year and empty months stay zero
	require.EqualValues(t, 0, data.Months[11].TotalAmount)
}
