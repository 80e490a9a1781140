// Package config reads server settings from flags, falling back to the
// environment (.env is loaded by main through godotenv).
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	RelayWeb3Forms = "web3forms"
	RelaySMTP      = "smtp"

	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	ContactRelay  string
	Web3FormsKey  string
	Web3FormsURL  string
	RelayTimeout  time.Duration
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
	ContactTo     string
	ResetDelay    time.Duration

	AdminUsername string
	AdminPassword string
	// DefaultAdmin is set when the development credentials are in use.
	DefaultAdmin bool

	FrameRate      int
	ThumbnailWidth int
	ImageDir       string
	ThumbDir       string
}

// ParseFlags validates flags and fills the rest from the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("storyfolio", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ContactRelay, "relay", "", "Contact relay (web3forms or smtp)")
	fs.IntVar(&cfg.FrameRate, "fps", 0, "Live session frame rate")
	fs.IntVar(&cfg.ThumbnailWidth, "thumb-width", 0, "Project thumbnail width in pixels, 0 disables")
	fs.StringVar(&cfg.ImageDir, "images", "images/projects", "Project image directory")
	fs.StringVar(&cfg.ThumbDir, "thumbs", "static/thumbs", "Thumbnail output directory")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		port, err := envInt("PORT", 8080)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", "file:storyfolio.db")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.Web3FormsKey = os.Getenv("WEB3FORMS_ACCESS_KEY")
	cfg.Web3FormsURL = os.Getenv("WEB3FORMS_URL")
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = os.Getenv("SMTP_PORT")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.ContactTo = os.Getenv("TO_EMAIL")

	if cfg.ContactRelay == "" {
		cfg.ContactRelay = os.Getenv("CONTACT_RELAY")
	}
	if cfg.ContactRelay == "" {
		cfg.ContactRelay = RelaySMTP
		if cfg.Web3FormsKey != "" {
			cfg.ContactRelay = RelayWeb3Forms
		}
	}
	switch cfg.ContactRelay {
	case RelayWeb3Forms:
		if cfg.Web3FormsKey == "" {
			return Config{}, errors.New("WEB3FORMS_ACCESS_KEY required for the web3forms relay")
		}
	case RelaySMTP:
	default:
		return Config{}, fmt.Errorf("unsupported contact relay %q", cfg.ContactRelay)
	}

	var err error
	if cfg.RelayTimeout, err = envDuration("RELAY_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ResetDelay, err = envDuration("CONTACT_RESET_DELAY", 5*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.FrameRate == 0 {
		if cfg.FrameRate, err = envInt("FRAME_RATE", 60); err != nil {
			return Config{}, err
		}
	}
	if cfg.FrameRate < 1 || cfg.FrameRate > 240 {
		return Config{}, fmt.Errorf("frame rate %d out of range", cfg.FrameRate)
	}
	if cfg.ThumbnailWidth == 0 {
		if cfg.ThumbnailWidth, err = envInt("THUMBNAIL_WIDTH", 0); err != nil {
			return Config{}, err
		}
	}

	cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		cfg.AdminUsername = defaultAdminUsername
		cfg.AdminPassword = defaultAdminPassword
		cfg.DefaultAdmin = true
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return d, nil
}
