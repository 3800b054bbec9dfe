// Package config reads the worker's deployment settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AddressingMode selects how a deployment reaches source and destination bytes.
type AddressingMode string

const (
	// ModeSignedURL streams through pre-signed GET/PUT URLs supplied per request.
	ModeSignedURL AddressingMode = "signed_url"
	// ModeDirect reads and writes bucket+path through the configured object store.
	ModeDirect AddressingMode = "direct"
)

type Config struct {
	HTTPPort        string
	Mode            AddressingMode
	ScratchDir      string
	FFmpegPath      string
	WatermarkText   string
	LogoWidth       int
	InputBucket     string
	OutputBucket    string
	// Zero means no limit on a transfer or callback request.
	TransferTimeout time.Duration
	CallbackTimeout time.Duration
	ShutdownTimeout time.Duration

	// Optional collaborators. Empty means disabled.
	DatabaseURL   string
	RedisAddr     string
	EventsChannel string

	Storage StorageConfig
	Log     LogConfig
}

type StorageConfig struct {
	Provider string // localfs | s3 | gdrive

	LocalRoot string

	S3Region         string
	S3Endpoint       string
	S3ForcePathStyle bool
	S3AccessKey      string
	S3SecretKey      string

	GDriveClientID     string
	GDriveClientSecret string
	GDriveRefreshToken string
	GDriveFolderID     string
}

type LogConfig struct {
	Level       string
	Format      string
	AddSource   bool
	ServiceName string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		HTTPPort:        Env("HTTP_PORT", Env("PORT", "8080")),
		Mode:            AddressingMode(strings.ToLower(Env("ADDRESSING_MODE", string(ModeSignedURL)))),
		ScratchDir:      Env("SCRATCH_DIR", os.TempDir()),
		FFmpegPath:      Env("FFMPEG_PATH", "ffmpeg"),
		WatermarkText:   Env("WATERMARK_TEXT", "Made with Sora AI"),
		LogoWidth:       IntEnv("LOGO_WIDTH", 120),
		InputBucket:     Env("INPUT_BUCKET", "uploads"),
		OutputBucket:    Env("OUTPUT_BUCKET", "processed"),
		TransferTimeout: DurationEnv("TRANSFER_TIMEOUT", 0),
		CallbackTimeout: DurationEnv("CALLBACK_TIMEOUT", 0),
		ShutdownTimeout: DurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL:   Env("DATABASE_URL", ""),
		RedisAddr:     Env("REDIS_ADDR", ""),
		EventsChannel: Env("EVENTS_CHANNEL", "vidmark:outcomes"),

		Storage: StorageConfig{
			Provider:           strings.ToLower(Env("STORAGE_PROVIDER", "localfs")),
			LocalRoot:          Env("STORAGE_LOCAL_ROOT", "/data"),
			S3Region:           Env("S3_REGION", "us-east-1"),
			S3Endpoint:         Env("S3_ENDPOINT", ""),
			S3ForcePathStyle:   BoolEnv("S3_FORCE_PATH_STYLE", false),
			S3AccessKey:        Env("S3_ACCESS_KEY_ID", ""),
			S3SecretKey:        Env("S3_SECRET_ACCESS_KEY", ""),
			GDriveClientID:     Env("GDRIVE_CLIENT_ID", ""),
			GDriveClientSecret: Env("GDRIVE_CLIENT_SECRET", ""),
			GDriveRefreshToken: Env("GDRIVE_REFRESH_TOKEN", ""),
			GDriveFolderID:     Env("GDRIVE_FOLDER_ID", ""),
		},

		Log: LogConfig{
			Level:       Env("LOG_LEVEL", "info"),
			Format:      Env("LOG_FORMAT", "json"),
			AddSource:   BoolEnv("LOG_SOURCE", false),
			ServiceName: Env("SERVICE_NAME", "vidmark-worker"),
		},
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the worker cannot start with.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeSignedURL, ModeDirect:
	default:
		return fmt.Errorf("unknown ADDRESSING_MODE %q", c.Mode)
	}
	if c.LogoWidth <= 0 {
		return fmt.Errorf("LOGO_WIDTH must be positive, got %d", c.LogoWidth)
	}
	if c.Mode == ModeDirect {
		switch c.Storage.Provider {
		case "localfs", "s3", "gdrive":
		default:
			return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.Storage.Provider)
		}
	}
	return nil
}

func Env(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

// BoolEnv reads an env var as bool. If empty or invalid, returns def.
func BoolEnv(k string, def bool) bool {
	b, err := strconv.ParseBool(Env(k, ""))
	if err != nil {
		return def
	}
	return b
}

// IntEnv reads an env var as int. If empty or invalid, returns def.
func IntEnv(k string, def int) int {
	n, err := strconv.Atoi(Env(k, ""))
	if err != nil {
		return def
	}
	return n
}

// DurationEnv accepts Go durations ("90s", "30m"). If empty or invalid, returns def.
func DurationEnv(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(Env(k, ""))
	if err != nil {
		return def
	}
	return d
}
