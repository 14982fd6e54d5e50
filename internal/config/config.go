package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envRepoBackend           = "REPO_BACKEND"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envStorageBackend        = "STORAGE_BACKEND"
	envBadgerPath            = "BADGER_PATH"
	envAWSRegion             = "AWS_REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envAWSBucket             = "AWS_BUCKET"
	envJWTSecret             = "JWT_SECRET"
	envJWTExpiry             = "JWT_EXPIRY"
	envShareBaseURL          = "SHARE_BASE_URL"
	envMaxUploadSize         = "MAX_UPLOAD_SIZE"
	envRateLimitRPS          = "RATE_LIMIT_RPS"
	envRateLimitBurst        = "RATE_LIMIT_BURST"
	envMailerAPIURL          = "MAILER_API_URL"
	envMailerAPIKey          = "MAILER_API_KEY"
	envMailerFrom            = "MAILER_FROM"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultRepoBackend        = RepoBackendMemory
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "docvault"
	defaultDBUser             = "docvault_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultStorageBackend     = StorageBackendMemory
	defaultBadgerPath         = "./data/blobs"
	defaultJWTExpiry          = 60 * time.Minute
	defaultShareBaseURL       = "http://localhost:8080/shares"
	defaultMaxUploadSize      = int64(200 * 1024 * 1024)
	defaultRateLimitRPS       = 20
	defaultRateLimitBurst     = 40
	minJWTSecretLength        = 32
	minUniqueCharsInSecret    = 16
	minRepeatedCharThreshold  = 4
	maxRepeatedChars          = 2
)

const (
	RepoBackendMemory   = "memory"
	RepoBackendPostgres = "postgres"

	StorageBackendMemory = "memory"
	StorageBackendBadger = "badger"
	StorageBackendS3     = "s3"
)

const (
	errInvalidConfigurationFmt = "invalid configuration: %w"
	errDBPasswordRequired      = "DB_PASSWORD must be set when REPO_BACKEND is postgres"
	errAWSConfigRequired       = "AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_BUCKET must be set when STORAGE_BACKEND is s3"
	errJWTSecretRequired       = "JWT_SECRET must be set"
	errJWTSecretMinLengthFmt   = "JWT_SECRET must be at least %d characters"
	errJWTSecretLowEntropy     = "JWT_SECRET has insufficient entropy (appears non-random); use a cryptographically secure random string"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	AWS      AWSConfig
	JWT      JWTConfig
	App      AppConfig
	Mailer   MailerConfig
}

type ServerConfig struct {
	Port            string `validate:"required"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Backend  string `validate:"oneof=memory postgres"`
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type StorageConfig struct {
	Backend    string `validate:"oneof=memory badger s3"`
	BadgerPath string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

type JWTConfig struct {
	Secret         string
	ExpiryDuration time.Duration `validate:"gt=0"`
}

type AppConfig struct {
	ShareBaseURL   string `validate:"required,url"`
	MaxUploadSize  int64  `validate:"gt=0"`
	RateLimitRPS   int    `validate:"gt=0"`
	RateLimitBurst int    `validate:"gt=0"`
}

type MailerConfig struct {
	APIURL string
	APIKey string
	From   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Backend:  getEnv(envRepoBackend, defaultRepoBackend),
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: os.Getenv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		Storage: StorageConfig{
			Backend:    getEnv(envStorageBackend, defaultStorageBackend),
			BadgerPath: getEnv(envBadgerPath, defaultBadgerPath),
		},
		AWS: AWSConfig{
			Region:          os.Getenv(envAWSRegion),
			AccessKeyID:     os.Getenv(envAWSAccessKeyID),
			SecretAccessKey: os.Getenv(envAWSSecretAccessKey),
			Bucket:          os.Getenv(envAWSBucket),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv(envJWTSecret),
			ExpiryDuration: getDurationEnv(envJWTExpiry, defaultJWTExpiry),
		},
		App: AppConfig{
			ShareBaseURL:   getEnv(envShareBaseURL, defaultShareBaseURL),
			MaxUploadSize:  getInt64Env(envMaxUploadSize, defaultMaxUploadSize),
			RateLimitRPS:   getIntEnv(envRateLimitRPS, defaultRateLimitRPS),
			RateLimitBurst: getIntEnv(envRateLimitBurst, defaultRateLimitBurst),
		},
		Mailer: MailerConfig{
			APIURL: os.Getenv(envMailerAPIURL),
			APIKey: os.Getenv(envMailerAPIKey),
			From:   os.Getenv(envMailerFrom),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Database.Backend == RepoBackendPostgres && c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequired)
	}

	if c.Storage.Backend == StorageBackendS3 {
		if c.AWS.Region == "" || c.AWS.AccessKeyID == "" || c.AWS.SecretAccessKey == "" || c.AWS.Bucket == "" {
			return fmt.Errorf(errAWSConfigRequired)
		}
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf(errJWTSecretRequired)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return fmt.Errorf(errJWTSecretLowEntropy)
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	if len(charCounts) < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
