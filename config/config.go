package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng:
// kết nối MongoDB, địa chỉ server, chu kỳ của các worker và tham số
// giao thức của các platform (Facebook/Instagram/LinkedIn).
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`      // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`     // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)

	// Worker Configuration
	SchedulerIntervalMinutes int `env:"SCHEDULER_INTERVAL_MINUTES" envDefault:"1"` // Chu kỳ quét publication đến hạn (phút)
	MetricsIntervalHours     int `env:"METRICS_INTERVAL_HOURS" envDefault:"6"`     // Chu kỳ thu thập metrics (giờ)

	// Platform API Configuration
	FacebookGraphBaseURL string `env:"FACEBOOK_GRAPH_BASE_URL" envDefault:"https://graph.facebook.com/v19.0"` // Base URL Graph API (Facebook + Instagram)
	LinkedInAPIBaseURL   string `env:"LINKEDIN_API_BASE_URL" envDefault:"https://api.linkedin.com"`           // Base URL LinkedIn API

	// Instagram Container Poll Policy
	// Container sau khi tạo phải poll đến khi status_code = FINISHED mới được publish.
	IgPollMaxAttempts  int `env:"IG_POLL_MAX_ATTEMPTS" envDefault:"10"` // Số lần poll tối đa cho một container
	IgPollDelaySeconds int `env:"IG_POLL_DELAY_SECONDS" envDefault:"3"` // Thời gian chờ giữa hai lần poll (giây)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
