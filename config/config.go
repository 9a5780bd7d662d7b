package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - 서버 설정 (.env + 환경 변수)
type Config struct {
	Port        string
	CORSOrigins string

	// DB
	DBDriver      string // "mysql", "sqlite", "" (비활성화)
	MySQLHost     string
	MySQLPort     int
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string
	SQLitePath    string

	// 층 도면 파일 디렉터리 (*.yaml)
	FloorPlanDir string

	// 로그 버퍼
	LogFlushSize     int
	LogFlushInterval time.Duration

	// 탐색 세션
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
}

// Load - .env 파일을 읽은 뒤 환경 변수로 설정 구성
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env 파일을 찾을 수 없습니다. 환경 변수만 사용합니다.")
	}
	return FromEnv()
}

// FromEnv - 현재 환경 변수로 설정 구성
func FromEnv() *Config {
	return &Config{
		Port:             getEnv("SERVER_PORT", "3000"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000"),
		DBDriver:         strings.ToLower(os.Getenv("DB_DRIVER")),
		MySQLHost:        os.Getenv("MYSQL_HOST"),
		MySQLPort:        getEnvInt("MYSQL_PORT", 3306),
		MySQLUser:        os.Getenv("MYSQL_USER"),
		MySQLPassword:    os.Getenv("MYSQL_PASSWORD"),
		MySQLDatabase:    os.Getenv("MYSQL_DATABASE"),
		SQLitePath:       getEnv("SQLITE_PATH", "wayfinder.db"),
		FloorPlanDir:     os.Getenv("FLOORPLAN_DIR"),
		LogFlushSize:     getEnvInt("LOG_FLUSH_SIZE", 50),
		LogFlushInterval: getEnvDuration("LOG_FLUSH_INTERVAL", 10*time.Second),

		SessionIdleTimeout:   getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute),
	}
}

// DatabaseEnabled - DB 사용 여부
func (c *Config) DatabaseEnabled() bool {
	return c.DBDriver != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
