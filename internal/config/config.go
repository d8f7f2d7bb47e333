package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort           string        // Application port
	IsProd            bool          // Is production environment
	DBDriver          string        // mysql, postgres or sqlite
	DBUser            string        // Database user
	DBPassword        string        // Database password
	DBHost            string        // Database host
	DBPort            string        // Database port
	DBName            string        // Database name
	SQLitePath        string        // SQLite file (or URI) when DBDriver is sqlite
	JWTSecret         string        // Bearer token secret, empty disables tokens
	JWTTTL            time.Duration // Bearer token lifetime
	RedisAddr         string        // Redis server address, empty disables the attempt limiter
	RedisPass         string        // Redis password
	RedisDB           int           // Redis database number
	AuthMaxFailures   int           // Failed logins before lockout
	AuthLockoutWindow time.Duration // Failure counting window
	MaxPageSize       int           // Upper clamp for list page size
	SeedDemoData      bool          // Seed demo identities and cards on migrate
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	driver := getEnv("DB_DRIVER", DriverMySQL)
	defaultPort := "3306"
	if driver == DriverPostgres {
		defaultPort = "5432"
	}
	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		IsProd:            os.Getenv("IS_PROD") == "true",
		DBDriver:          driver,
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBHost:            getEnv("DB_HOST", "127.0.0.1"),
		DBPort:            getEnv("DB_PORT", defaultPort),
		DBName:            getEnv("DB_NAME", "cashcard"),
		SQLitePath:        getEnv("SQLITE_PATH", "cashcard.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            getEnvDuration("JWT_TTL", time.Hour),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         os.Getenv("REDIS_PASS"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		AuthMaxFailures:   getEnvInt("AUTH_MAX_FAILURES", 5),
		AuthLockoutWindow: getEnvDuration("AUTH_LOCKOUT_WINDOW", 15*time.Minute),
		MaxPageSize:       getEnvInt("MAX_PAGE_SIZE", 2000),
		SeedDemoData:      os.Getenv("SEED_DEMO_DATA") == "true",
	}
}

// DSN builds the driver specific data source name
func (c *Config) DSN() (string, error) {
	switch c.DBDriver {
	case DriverMySQL:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true", nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort), nil
	case DriverSQLite:
		return c.SQLitePath, nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

// getEnv returns the variable or def when unset
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to def when the variable is unset or not a number
func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}
