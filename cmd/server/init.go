package main

import (
	"context"
	"fmt"

	"pullnova_marketing/config"
	"pullnova_marketing/internal/database"
	"pullnova_marketing/internal/global"
	"pullnova_marketing/internal/logger"
)

// InitGlobal khởi tạo các biến toàn cục của ứng dụng:
// cấu hình, kết nối MongoDB và validator.
func InitGlobal() {
	log := logger.GetAppLogger()

	// Đọc cấu hình từ file env
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		panic("Không thể khởi tạo cấu hình server")
	}
	log.Info("Đã khởi tạo cấu hình server")

	// Kết nối MongoDB
	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		panic(fmt.Sprintf("Không thể kết nối MongoDB: %v", err))
	}
	global.MongoDB_Session = client

	// Validator cho các DTO
	global.InitValidator()
	log.Info("Đã khởi tạo validator")
}

// InitDatabase đăng ký các collection vào registry và đảm bảo index của pipeline
func InitDatabase() {
	log := logger.GetAppLogger()

	InitCollections()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	if err := database.EnsurePipelineIndexes(context.Background(), db); err != nil {
		// Index lỗi không chặn server khởi động: query vẫn đúng, chỉ chậm hơn
		log.WithError(err).Error("Không thể tạo đầy đủ index, server vẫn tiếp tục khởi động")
	}
}
