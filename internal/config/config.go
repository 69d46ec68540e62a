package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string // Application port
	AppURL      string // Public URL used in invitation emails
	MongoURI    string // MongoDB connection string
	MongoDB     string // MongoDB database name
	StoreDriver string // Store driver: "mongo" (default) or "memory"
	JWTSecret   string // Secret shared with the wallet provider's identity tokens
	RedisAddr   string // Redis server address
	RedisPass   string // Redis password
	RedisDB     int    // Redis database number
	SMTPHost    string // SMTP server host
	SMTPPort    int    // SMTP server port
	SMTPUser    string // SMTP username
	SMTPPass    string // SMTP password
	SMTPFrom    string // Sender address for invitation emails
	RPCURL      string // JSON-RPC endpoint for balance lookups
	IsProd      bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587 // Default SMTP submission port
	}
	return &Config{
		AppPort:     os.Getenv("APP_PORT"),          // Application port
		AppURL:      os.Getenv("APP_URL"),           // Public app URL
		MongoURI:    os.Getenv("MONGO_URI"),         // MongoDB connection string
		MongoDB:     os.Getenv("MONGO_DB"),          // MongoDB database name
		StoreDriver: os.Getenv("STORE_DRIVER"),      // Store driver override
		JWTSecret:   os.Getenv("JWT_SECRET"),        // Identity token secret
		RedisAddr:   os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:     redisDB,                        // Redis database number
		SMTPHost:    os.Getenv("SMTP_HOST"),         // SMTP server host
		SMTPPort:    smtpPort,                       // SMTP server port
		SMTPUser:    os.Getenv("SMTP_USER"),         // SMTP username
		SMTPPass:    os.Getenv("SMTP_PASS"),         // SMTP password
		SMTPFrom:    os.Getenv("SMTP_FROM"),         // Invitation sender address
		RPCURL:      os.Getenv("RPC_URL"),           // JSON-RPC endpoint
		IsProd:      os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
