package config

import (
	"os"
	"time"

	"wa-coach-bot/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort       string
	LogLevel         string
	OwnerNumber      string
	GatewayURL       string
	GatewayToken     string
	VertexProjectID  string
	VertexLocation   string
	ModelName        string
	UsersFile        string
	SessionDir       string
	SessionBackupDir string
	UserStore        string
	SupabaseURL      string
	SupabaseKey      string
	SweepInterval    time.Duration
	BackupInterval   time.Duration
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:       getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		OwnerNumber:      getEnvOrDefault("OWNER_NUMBER", ""),
		GatewayURL:       getEnvOrDefault("GATEWAY_URL", "http://localhost:3000"),
		GatewayToken:     getEnvOrDefault("GATEWAY_TOKEN", ""),
		VertexProjectID:  getEnvOrDefault("VERTEX_PROJECT_ID", ""),
		VertexLocation:   getEnvOrDefault("VERTEX_LOCATION", "us-central1"),
		ModelName:        getEnvOrDefault("MODEL_NAME", "gemini-1.5-flash"),
		UsersFile:        getEnvOrDefault("USERS_FILE", "users.json"),
		SessionDir:       getEnvOrDefault("SESSION_DIR", "./.wa_session"),
		SessionBackupDir: getEnvOrDefault("SESSION_BACKUP_DIR", "session_backup"),
		UserStore:        getEnvOrDefault("USER_STORE", "file"),
		SupabaseURL:      getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:      getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SweepInterval:    getEnvDurationOrDefault("SWEEP_INTERVAL", 6*time.Hour),
		BackupInterval:   getEnvDurationOrDefault("BACKUP_INTERVAL", time.Hour),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetOwnerNumber returns the owner's bare phone number
func (c *AppConfig) GetOwnerNumber() string {
	return c.OwnerNumber
}

// GetGatewayURL returns the chat gateway base URL
func (c *AppConfig) GetGatewayURL() string {
	return c.GatewayURL
}

// GetGatewayToken returns the shared token for gateway calls
func (c *AppConfig) GetGatewayToken() string {
	return c.GatewayToken
}

// GetVertexProjectID returns the Vertex AI project ID
func (c *AppConfig) GetVertexProjectID() string {
	return c.VertexProjectID
}

// GetVertexLocation returns the Vertex AI region
func (c *AppConfig) GetVertexLocation() string {
	return c.VertexLocation
}

// GetModelName returns the generative model name
func (c *AppConfig) GetModelName() string {
	return c.ModelName
}

// GetUsersFile returns the user store file path
func (c *AppConfig) GetUsersFile() string {
	return c.UsersFile
}

// GetSessionDir returns the gateway session directory
func (c *AppConfig) GetSessionDir() string {
	return c.SessionDir
}

// GetSessionBackupDir returns the session backup directory
func (c *AppConfig) GetSessionBackupDir() string {
	return c.SessionBackupDir
}

// GetUserStore returns the user store backend name ("file" or "supabase")
func (c *AppConfig) GetUserStore() string {
	return c.UserStore
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSweepInterval returns the expiry sweep interval
func (c *AppConfig) GetSweepInterval() time.Duration {
	return c.SweepInterval
}

// GetBackupInterval returns the session backup interval
func (c *AppConfig) GetBackupInterval() time.Duration {
	return c.BackupInterval
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
