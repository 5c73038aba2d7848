package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	AppEnv  string
	Version string

	DBDriver       string // postgres, mysql or sqlite
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBDSN          string // overrides the DSN built from the fields above
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBLogLevel     string

	SessionProvider    string // jwt or remote
	JWTKey             string
	JWTTTLHours        int
	AuthServiceURL     string
	AuthSessionPath    string
	AuthTimeoutSeconds int

	CorsAllowOrigins string
	AccessLog        bool

	RollbarToken           string
	ShutdownTimeoutSeconds int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		Version: getEnv("APP_VERSION", "dev"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "coursebuilder"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBDSN:          getEnv("DB_DSN", ""),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBLogLevel:     strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),

		SessionProvider:    strings.ToLower(getEnv("SESSION_PROVIDER", "jwt")),
		JWTKey:             getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTTTLHours:        getEnvInt("JWT_TTL_HOURS", 24),
		AuthServiceURL:     getEnv("AUTH_SERVICE_URL", "http://localhost:3001"),
		AuthSessionPath:    getEnv("AUTH_SESSION_PATH", "/api/auth/get-session"),
		AuthTimeoutSeconds: getEnvInt("AUTH_TIMEOUT_SECONDS", 5),

		CorsAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		AccessLog:        getEnvBool("ACCESS_LOG", true),

		RollbarToken:           getEnv("ROLLBAR_TOKEN", ""),
		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
	}

	// Validate critical configuration
	if AppConfig.SessionProvider == "jwt" && AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}

	return AppConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid value for %s. Using default: %d", key, defaultValue)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: Invalid value for %s. Using default: %t", key, defaultValue)
		return defaultValue
	}
	return boolValue
}
