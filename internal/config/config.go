package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Database drivers supported by db.Open
const (
	DriverMySQL    = "mysql"    // Default production driver
	DriverPostgres = "postgres" // Alternative production driver, uses DatabaseURL
	DriverSQLite   = "sqlite"   // Local development driver
)

// Config holds the application configuration
type Config struct {
	AppPort        string // Application port
	DBDriver       string // Database driver: mysql, postgres or sqlite
	DBUser         string // Database user
	DBPassword     string // Database password
	DBHost         string // Database host
	DBPort         string // Database port
	DBName         string // Database name
	DatabaseURL    string // Postgres connection string, used when DBDriver is postgres
	SQLitePath     string // SQLite database file, used when DBDriver is sqlite
	JWTSecret      string // JWT secret key
	RedisAddr      string // Redis server address
	RedisPass      string // Redis password
	RedisDB        int    // Redis database number
	IsProd         bool   // Is production environment
	LogLevel       string // Logrus level name
	LogFile        string // Optional rotated log file
	ReferralReward int64  // Reward written by the seed command
	AdminEmail     string // Account promoted to admin by the seed command
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	reward, err := strconv.ParseInt(os.Getenv("REFERRAL_REWARD"), 10, 64)
	if err != nil {
		reward = 50 // Default seeded reward
	}
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),             // Application port
		DBDriver:       getEnv("DB_DRIVER", DriverMySQL),       // Database driver
		DBUser:         os.Getenv("DB_USER"),                   // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),               // Database password
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),         // Database host
		DBPort:         getEnv("DB_PORT", "3306"),              // Database port
		DBName:         os.Getenv("DB_NAME"),                   // Database name
		DatabaseURL:    os.Getenv("DATABASE_URL"),              // Postgres DSN
		SQLitePath:     getEnv("SQLITE_PATH", "referrals.db"),  // SQLite file
		JWTSecret:      os.Getenv("JWT_SECRET"),                // JWT secret key
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"), // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:        redisDB,                                // Redis database number
		IsProd:         os.Getenv("IS_PROD") == "true",         // Is production environment
		LogLevel:       getEnv("LOG_LEVEL", "info"),            // Log level
		LogFile:        os.Getenv("LOG_FILE"),                  // Log file
		ReferralReward: reward,                                 // Seeded reward
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),               // Seeded admin
	}
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
