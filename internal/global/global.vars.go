package global

import (
	"go.mongodb.org/mongo-driver/mongo"

	"pullnova_marketing/config"
	"pullnova_marketing/internal/registry"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	ContentItems      string // Tên collection cho content items (mirror từ content editor)
	ConnectedAccounts string // Tên collection cho các tài khoản đã kết nối
	Publications      string // Tên collection cho publications (lịch đăng bài)
	MetricSamples     string // Tên collection cho metric samples (append-only)
	DailySummaries    string // Tên collection cho daily summaries
	WorkerLogs        string // Tên collection cho operational log của worker
}

// Các biến toàn cục
var MongoDB_Session *mongo.Client               // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration  // Cấu hình của server
var MongoDB_ColNames = CollectionName{          // Tên các collection
	ContentItems:      "content_items",
	ConnectedAccounts: "connected_accounts",
	Publications:      "publications",
	MetricSamples:     "metric_samples",
	DailySummaries:    "daily_summaries",
	WorkerLogs:        "worker_logs",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
