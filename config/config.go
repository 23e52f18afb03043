package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	JWTSecret string
	JWTTTL    time.Duration

	ClientURL    string
	AppEnv       string
	StoreTimeout time.Duration
	StoreDriver  string

	BootstrapAdminEmail string
	BootstrapAdminName  string
	BootstrapAdminOrg   string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func LoadConfig() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "leave_management"),
		Port:     getEnv("PORT", "3000"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getEnvAsDuration("JWT_TTL", 5*time.Hour),

		ClientURL:    getEnv("CLIENT_URL", "*"),
		AppEnv:       getEnv("APP_ENV", "development"),
		StoreTimeout: getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),

		BootstrapAdminEmail: strings.TrimSpace(getEnv("BOOTSTRAP_ADMIN_EMAIL", "")),
		BootstrapAdminName:  getEnv("BOOTSTRAP_ADMIN_NAME", "Administrator"),
		BootstrapAdminOrg:   getEnv("BOOTSTRAP_ADMIN_ORG", ""),
	}
}

// Validate reports the first setting that would keep the server from starting.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	if c.StoreDriver != DriverMongo && c.StoreDriver != DriverMemory {
		return errors.New("STORE_DRIVER must be mongo or memory")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
