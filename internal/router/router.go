package router

import (
	"customer-ledger/internal/config"
	"customer-ledger/internal/handler"
	"customer-ledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// no auth required
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything below requires a signed-in user
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db, cfg.Security.EncryptionKey),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/auth/logout", authHandler.Logout)

	entryHandler := handler.NewEntryHandler(db)
	protected.POST("/entries", entryHandler.CreateEntry)
	protected.GET("/entries", entryHandler.ListEntries)
	protected.PUT("/entries/:id", entryHandler.UpdateEntry)
	protected.DELETE("/entries/:id", entryHandler.DeleteEntry)

	importExportHandler := handler.NewImportExportHandler(db)
	protected.POST("/entries/import", importExportHandler.ImportEntries)
	protected.GET("/export/csv", importExportHandler.ExportCSV)
	protected.GET("/export/excel", importExportHandler.ExportExcelCSV)
	protected.GET("/export/xlsx", importExportHandler.ExportXLSX)
	protected.GET("/export/txt", importExportHandler.ExportText)
	protected.GET("/export/print", importExportHandler.ExportPrint)

	statsHandler := handler.NewStatsHandler(db)
	protected.GET("/stats/monthly", statsHandler.GetMonthlyStats)
	protected.GET("/stats/yearly", statsHandler.GetYearlyStats)
	protected.GET("/stats/years", statsHandler.GetAvailableYears)

	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	backupHandler := handler.NewBackupHandler(db, cfg.Security.EncryptionKey, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db, cfg.Security.EncryptionKey, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
