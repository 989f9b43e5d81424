package main

import (
	"pullnova_marketing/internal/global"
	"pullnova_marketing/internal/logger"
)

// InitCollections đăng ký các collection của pipeline vào registry.
// Các service lấy collection qua registry thay vì giữ *mongo.Database trực tiếp.
func InitCollections() {
	log := logger.GetAppLogger()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)

	colNames := []string{
		global.MongoDB_ColNames.ContentItems,
		global.MongoDB_ColNames.ConnectedAccounts,
		global.MongoDB_ColNames.Publications,
		global.MongoDB_ColNames.MetricSamples,
		global.MongoDB_ColNames.DailySummaries,
		global.MongoDB_ColNames.WorkerLogs,
	}

	for _, name := range colNames {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"collection": name,
			}).Error("Không thể đăng ký collection vào registry")
		}
	}

	log.WithFields(map[string]interface{}{
		"count": len(colNames),
	}).Info("Đã đăng ký các collection vào registry")
}
