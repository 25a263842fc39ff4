package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	AI       AIConfig
	Store    StoreConfig
	Uploads  UploadsConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AdminConfig configures the dashboard password gate. PasswordHash is a
// bcrypt hash of the admin password; JWTSecret signs the session tokens.
type AdminConfig struct {
	PasswordHash  string
	JWTSecret     string
	SessionExpiry int // in minutes
}

// AIConfig selects between the real Gemini generator and the mock one.
// The mock is used when UseMock is set or no plausible API key is present.
type AIConfig struct {
	GeminiAPIKey string
	UseMock      bool
}

// StoreConfig holds storefront identity used in outbound order summaries.
type StoreConfig struct {
	Name          string
	WhatsAppPhone string
}

type UploadsConfig struct {
	Dir     string
	BaseURL string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ADMIN_SESSION_EXPIRY", 60)
	viper.SetDefault("STORE_NAME", "INZASTORE")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("UPLOADS_BASE_URL", "/uploads")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	geminiKey := viper.GetString("GEMINI_API_KEY")

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			PasswordHash:  viper.GetString("ADMIN_PASSWORD_HASH"),
			JWTSecret:     viper.GetString("ADMIN_JWT_SECRET"),
			SessionExpiry: viper.GetInt("ADMIN_SESSION_EXPIRY"),
		},
		AI: AIConfig{
			GeminiAPIKey: geminiKey,
			// A key shorter than a real Gemini key cannot work, fall
			// back to the mock rather than failing every request.
			UseMock: viper.GetBool("AI_USE_MOCK") || len(geminiKey) < 10,
		},
		Store: StoreConfig{
			Name:          viper.GetString("STORE_NAME"),
			WhatsAppPhone: viper.GetString("STORE_WHATSAPP_PHONE"),
		},
		Uploads: UploadsConfig{
			Dir:     viper.GetString("UPLOADS_DIR"),
			BaseURL: viper.GetString("UPLOADS_BASE_URL"),
		},
	}
}
