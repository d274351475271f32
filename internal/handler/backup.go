package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"customer-ledger/internal/models"
	"customer-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler writes, lists, restores and deletes encrypted snapshots
// of a user's entries.
type BackupHandler struct {
	DB         *gorm.DB
	EncryptKey string
	BackupDir  string
}

func NewBackupHandler(db *gorm.DB, encryptKey, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:         db,
		EncryptKey: encryptKey,
		BackupDir:  backupDir,
	}
}

// backupData is the snapshot file content.
type backupData struct {
	UserID  uint           `json:"user_id"`
	Created time.Time      `json:"created"`
	Entries []models.Entry `json:"entries"`
}

// CreateBackup snapshots the user's entries into an encrypted file.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var entries []models.Entry
	if err := h.DB.Where("owner_id = ?", user.ID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entries")
		return
	}

	data := backupData{
		UserID:  user.ID,
		Created: time.Now(),
		Entries: entries,
	}
	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to serialize backup")
		return
	}

	enc, err := util.EncryptAES(h.EncryptKey, raw)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to encrypt backup")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create backup dir")
		return
	}

	fileName := fmt.Sprintf("backup-%d-%s.bin", user.ID, uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write backup file")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		UserID:   user.ID,
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record backup")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size":       backup.Size,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups lists the user's backups, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var list []models.Backup
	if err := h.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list backups")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

func (h *BackupHandler) findBackup(c *gin.Context, userID uint) (*models.Backup, bool) {
	id := c.Param("id")

	var backup models.Backup
	if err := h.DB.
		Where("id = ? AND user_id = ?", id, userID).
		First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load backup")
		}
		return nil, false
	}
	return &backup, true
}

// DownloadBackup streams the encrypted backup file.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup removes the backup record and its file.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user.ID)
	if !ok {
		return
	}

	// file first, then the record
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete backup")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// RestoreBackup replaces the user's entries with the snapshot content,
// atomically.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user.ID)
	if !ok {
		return
	}

	encData, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to read backup file")
		return
	}

	raw, err := util.DecryptAES(h.EncryptKey, encData)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to decrypt backup file")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to parse backup data")
		return
	}

	if data.UserID != 0 && data.UserID != user.ID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "backup belongs to a different user")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		for i := range data.Entries {
			e := data.Entries[i]
			e.OwnerID = user.ID
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore failed")
		return
	}

	util.Success(c, util.Response{
		"message":       "restored",
		"entries_count": len(data.Entries),
	})
}
