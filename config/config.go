package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agri_holding/internal/utility"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Các nguồn dữ liệu được hỗ trợ cho màn hình xem bản ghi
const (
	SourceMongoDB  = "mongodb"
	SourceMySQL    = "mysql"
	SourceSQLite   = "sqlite"
	SourceFixtures = "fixtures"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	InitMode bool   `env:"INITMODE" envDefault:"false"` // Chế độ khởi tạo (seed dữ liệu mẫu vào nguồn dữ liệu)
	Address  string `env:"ADDRESS" envDefault:":8080"`  // Địa chỉ server
	// Nguồn dữ liệu
	DataSource            string `env:"DATA_SOURCE" envDefault:"mongodb"`            // mongodb | mysql | sqlite | fixtures
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI"`                      // URL kết nối MongoDB
	MongoDB_DBName_Data   string `env:"MONGODB_DBNAME_DATA" envDefault:"muheesi_data"` // Tên cơ sở dữ liệu data
	MySQL_DSN             string `env:"MYSQL_DSN"`                                   // DSN MySQL, ví dụ: user:pass@tcp(host:3306)/muheesi?parseTime=true
	SQLite_Path           string `env:"SQLITE_PATH" envDefault:"muheesi.db"`         // Đường dẫn file SQLite (":memory:" cho test)
	// Bản ghi
	FixtureFallback bool   `env:"FIXTURE_FALLBACK" envDefault:"true"` // Hiển thị dữ liệu mẫu khi nguồn rỗng hoặc lỗi
	EntitiesFile    string `env:"ENTITIES_FILE"`                     // File YAML bổ sung/ghi đè cấu hình loại bản ghi
	Tenants         string `env:"TENANTS" envDefault:"muheesi,kashari,bwera,kyenjojo"` // Danh sách công ty con hợp lệ (phân cách bởi dấu phẩy)
	DefaultTenant   string `env:"DEFAULT_TENANT" envDefault:"muheesi"`                 // Công ty con mặc định khi request không gửi header
	// Thông báo
	NoticeLimit int           `env:"NOTICE_LIMIT" envDefault:"50"`  // Số thông báo tối đa giữ lại cho mỗi công ty con
	NoticeTTL   time.Duration `env:"NOTICE_TTL" envDefault:"120s"` // Thời gian sống của một thông báo
	// Worker
	NoticeSweepInterval time.Duration `env:"NOTICE_SWEEP_INTERVAL" envDefault:"1m"` // Chu kỳ dọn thông báo hết hạn
	// HTTP
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	// SMTP (gửi file xuất qua email, tùy chọn)
	SMTP_Host     string `env:"SMTP_HOST"`
	SMTP_Port     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTP_Username string `env:"SMTP_USERNAME"`
	SMTP_Password string `env:"SMTP_PASSWORD"`
	SMTP_From     string `env:"SMTP_FROM" envDefault:"records@muheesi.local"`
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// TenantList trả về danh sách công ty con hợp lệ, đã bỏ khoảng trắng và phần tử rỗng
func (c *Configuration) TenantList() []string {
	var out []string
	for _, t := range strings.Split(c.Tenants, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Validate kiểm tra các giá trị phụ thuộc lẫn nhau mà env tag không diễn tả được
func (c *Configuration) Validate() error {
	switch c.DataSource {
	case SourceMongoDB:
		if c.MongoDB_ConnectionURI == "" {
			return fmt.Errorf("MONGODB_CONNECTION_URI là bắt buộc khi DATA_SOURCE=%s", c.DataSource)
		}
	case SourceMySQL:
		if c.MySQL_DSN == "" {
			return fmt.Errorf("MYSQL_DSN là bắt buộc khi DATA_SOURCE=%s", c.DataSource)
		}
	case SourceSQLite:
		if c.SQLite_Path == "" {
			return fmt.Errorf("SQLITE_PATH là bắt buộc khi DATA_SOURCE=%s", c.DataSource)
		}
	case SourceFixtures:
	default:
		return fmt.Errorf("DATA_SOURCE không hợp lệ: %q", c.DataSource)
	}

	tenants := c.TenantList()
	if len(tenants) == 0 {
		return fmt.Errorf("TENANTS không được rỗng")
	}
	if !utility.Contains(tenants, c.DefaultTenant) {
		return fmt.Errorf("DEFAULT_TENANT %q không nằm trong TENANTS", c.DefaultTenant)
	}

	if c.EnableTLS && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return fmt.Errorf("ENABLE_TLS=true cần TLS_CERT_FILE và TLS_KEY_FILE")
	}
	if c.NoticeLimit <= 0 {
		return fmt.Errorf("NOTICE_LIMIT phải lớn hơn 0")
	}
	return nil
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

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
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi từ biến môi trường.
// Không tìm thấy file env không phải lỗi: biến môi trường và giá trị mặc định vẫn được dùng.
func NewConfig(files ...string) *Configuration {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = append(files, envPath)
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
			fmt.Printf("Không thể load file env tại %s: %v\n", f, err)
			return nil
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
