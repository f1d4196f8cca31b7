package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory (photos, rendered documents, catalog)
	Data string
	// DSN points to where adotepet stores completed interviews
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// CatalogPath is the animal catalog JSON file.
	// Defaults to <Data>/animals.json.
	CatalogPath string

	// Operator delivery configuration
	OperatorWebhookURL string // ADOTEPET_OPERATOR_WEBHOOK_URL
	OperatorRecipient  string // ADOTEPET_OPERATOR_RECIPIENT (channel/chat identifier)

	// Photo processing configuration
	PhotoMaxSizeKB int // ADOTEPET_PHOTO_MAX_SIZE_KB (default: 500)
	PhotoQuality   int // ADOTEPET_PHOTO_QUALITY (default: 85)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from ADOTEPET_* environment variables.
func (p *Profile) FromEnv() {
	getIntEnv := func(key string, defaultValue int) int {
		if val := os.Getenv(key); val != "" {
			if n, err := strconv.Atoi(val); err == nil {
				return n
			}
		}
		return defaultValue
	}

	p.OperatorWebhookURL = os.Getenv("ADOTEPET_OPERATOR_WEBHOOK_URL")
	p.OperatorRecipient = getEnvOrDefault("ADOTEPET_OPERATOR_RECIPIENT", "adoption-review")
	p.PhotoMaxSizeKB = getIntEnv("ADOTEPET_PHOTO_MAX_SIZE_KB", 500)
	p.PhotoQuality = getIntEnv("ADOTEPET_PHOTO_QUALITY", 85)
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "adotepet")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/adotepet"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("adotepet_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.CatalogPath == "" {
		p.CatalogPath = filepath.Join(dataDir, "animals.json")
	}
	if p.PhotoMaxSizeKB <= 0 {
		p.PhotoMaxSizeKB = 500
	}
	if p.PhotoQuality <= 0 || p.PhotoQuality > 100 {
		p.PhotoQuality = 85
	}

	return nil
}
