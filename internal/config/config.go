package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	catalogFile = "media.json"

	defaultMaxUploadBytes     = 10 << 20
	defaultCacheTTL           = 5 * time.Minute
	defaultMaxConnections     = 100
	defaultRequestTimeoutBase = 15 * time.Second
	defaultRequestTimeoutMB   = 3 * time.Second
)

type Settings struct {
	ServerPort  int
	DataDir     string
	CatalogPath string
	UploadsRoot string

	MirrorBackend  string
	MirrorRoot     string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MirrorBucket   string

	MaxUploadBytes int64
	ImageQuality   int
	ImageSpecsFile string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	MaxConnections     int
	RequestTimeoutBase time.Duration
	RequestTimeoutMB   time.Duration
	WatchCatalog       bool
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("DATA_DIR") {
		return nil, fmt.Errorf("DATA_DIR is required")
	}
	if !viper.IsSet("UPLOADS_ROOT") {
		return nil, fmt.Errorf("UPLOADS_ROOT is required")
	}

	s := &Settings{
		ServerPort:  viper.GetInt("SERVER_PORT"),
		DataDir:     viper.GetString("DATA_DIR"),
		UploadsRoot: viper.GetString("UPLOADS_ROOT"),

		MirrorRoot:     viper.GetString("MIRROR_ROOT"),
		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		MirrorBucket:   viper.GetString("MIRROR_BUCKET"),

		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		ImageQuality:   viper.GetInt("IMAGE_QUALITY"),
		ImageSpecsFile: viper.GetString("IMAGE_SPECS_FILE"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		CacheTTL:      getDuration("CACHE_TTL", defaultCacheTTL),

		MaxConnections:     getInt("MAX_CONNECTIONS", defaultMaxConnections),
		RequestTimeoutBase: getDuration("REQUEST_TIMEOUT_BASE", defaultRequestTimeoutBase),
		RequestTimeoutMB:   getDuration("REQUEST_TIMEOUT_PER_MB", defaultRequestTimeoutMB),
		WatchCatalog:       !viper.IsSet("WATCH_CATALOG") || viper.GetBool("WATCH_CATALOG"),
	}
	s.CatalogPath = filepath.Join(s.DataDir, catalogFile)

	// a mirror root alone is enough to turn the filesystem mirror on
	s.MirrorBackend = viper.GetString("MIRROR_BACKEND")
	if s.MirrorBackend == "" {
		s.MirrorBackend = "none"
		if s.MirrorRoot != "" {
			s.MirrorBackend = "fs"
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.ServerPort <= 0 || s.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port, got %d", s.ServerPort)
	}
	switch s.MirrorBackend {
	case "none":
	case "fs":
		if s.MirrorRoot == "" {
			return fmt.Errorf("MIRROR_ROOT is required when MIRROR_BACKEND is fs")
		}
	case "minio":
		if s.MinioEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when MIRROR_BACKEND is minio")
		}
		if s.MirrorBucket == "" {
			return fmt.Errorf("MIRROR_BUCKET is required when MIRROR_BACKEND is minio")
		}
	default:
		return fmt.Errorf("MIRROR_BACKEND must be one of fs, minio, none, got %q", s.MirrorBackend)
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", s.MaxUploadBytes)
	}
	if s.ImageQuality < 0 || s.ImageQuality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be within 0-100, got %d", s.ImageQuality)
	}
	return nil
}

func getInt(key string, def int) int {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetInt(key)
}

func getInt64(key string, def int64) int64 {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetInt64(key)
}

func getDuration(key string, def time.Duration) time.Duration {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetDuration(key)
}
