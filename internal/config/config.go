package config

import (
	"os"
	"strconv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration. The signing secret is read once at startup and
// injected into the token service; nothing else touches the environment.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
}

// Bootstrap admin configuration
type AdminConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Uploads configuration
type UploadsConfig struct {
	Dir string
}

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	Admin   AdminConfig
	Uploads UploadsConfig
}

// Default configuration values
const (
	DefaultServerPort    = "5000"
	DefaultServerHost    = ""
	DefaultMongoURI      = "mongodb://localhost:27017/alumni-db"
	DefaultMongoDB       = "alumni-db"
	DefaultTokenTTLHours = 24
	DefaultBcryptCost    = 10
	DefaultAdminEmail    = "admin@dbu.edu.et"
	DefaultAdminFirst    = "Admin"
	DefaultAdminLast     = "DBU"
	DefaultUploadsDir    = "uploads"
)

// Request field limits
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// New returns a new Config with values from the environment
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", DefaultTokenTTLHours),
			BcryptCost:    getEnvInt("BCRYPT_COST", DefaultBcryptCost),
		},
		Admin: AdminConfig{
			Email:     getEnv("ADMIN_EMAIL", DefaultAdminEmail),
			Password:  getEnv("ADMIN_PASSWORD", ""),
			FirstName: getEnv("ADMIN_FIRST_NAME", DefaultAdminFirst),
			LastName:  getEnv("ADMIN_LAST_NAME", DefaultAdminLast),
		},
		Uploads: UploadsConfig{
			Dir: getEnv("UPLOADS_DIR", DefaultUploadsDir),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
