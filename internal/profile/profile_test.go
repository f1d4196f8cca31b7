package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	clearEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	if profile.OperatorWebhookURL != "" {
		t.Errorf("OperatorWebhookURL: expected empty, got %q", profile.OperatorWebhookURL)
	}
	if profile.OperatorRecipient != "adoption-review" {
		t.Errorf("OperatorRecipient: expected %q, got %q", "adoption-review", profile.OperatorRecipient)
	}
	if profile.PhotoMaxSizeKB != 500 {
		t.Errorf("PhotoMaxSizeKB: expected 500, got %d", profile.PhotoMaxSizeKB)
	}
	if profile.PhotoQuality != 85 {
		t.Errorf("PhotoQuality: expected 85, got %d", profile.PhotoQuality)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("ADOTEPET_OPERATOR_WEBHOOK_URL", "https://hooks.example.com/adoption")
	os.Setenv("ADOTEPET_OPERATOR_RECIPIENT", "shelter-ops")
	os.Setenv("ADOTEPET_PHOTO_MAX_SIZE_KB", "250")
	os.Setenv("ADOTEPET_PHOTO_QUALITY", "70")

	profile := &Profile{}
	profile.FromEnv()

	if profile.OperatorWebhookURL != "https://hooks.example.com/adoption" {
		t.Errorf("OperatorWebhookURL: got %q", profile.OperatorWebhookURL)
	}
	if profile.OperatorRecipient != "shelter-ops" {
		t.Errorf("OperatorRecipient: got %q", profile.OperatorRecipient)
	}
	if profile.PhotoMaxSizeKB != 250 {
		t.Errorf("PhotoMaxSizeKB: got %d", profile.PhotoMaxSizeKB)
	}
	if profile.PhotoQuality != 70 {
		t.Errorf("PhotoQuality: got %d", profile.PhotoQuality)
	}
}

func TestFromEnvIgnoresUnparsableInts(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("ADOTEPET_PHOTO_MAX_SIZE_KB", "not-a-number")

	profile := &Profile{}
	profile.FromEnv()

	if profile.PhotoMaxSizeKB != 500 {
		t.Errorf("PhotoMaxSizeKB: expected default 500, got %d", profile.PhotoMaxSizeKB)
	}
}

func TestValidate(t *testing.T) {
	dataDir := t.TempDir()

	t.Run("unknown mode falls back to demo", func(t *testing.T) {
		profile := &Profile{Mode: "staging", Data: dataDir, Driver: "sqlite"}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if profile.Mode != "demo" {
			t.Errorf("Mode: expected demo, got %q", profile.Mode)
		}
	})

	t.Run("sqlite DSN defaults under data dir", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: dataDir, Driver: "sqlite"}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		expected := filepath.Join(dataDir, "adotepet_dev.db")
		if profile.DSN != expected {
			t.Errorf("DSN: expected %q, got %q", expected, profile.DSN)
		}
	})

	t.Run("catalog path defaults under data dir", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: dataDir, Driver: "sqlite"}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		expected := filepath.Join(dataDir, "animals.json")
		if profile.CatalogPath != expected {
			t.Errorf("CatalogPath: expected %q, got %q", expected, profile.CatalogPath)
		}
	})

	t.Run("missing data dir errors", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: filepath.Join(dataDir, "does-not-exist"), Driver: "sqlite"}
		if err := profile.Validate(); err == nil {
			t.Error("expected error for missing data dir")
		}
	})

	t.Run("photo settings clamped to defaults", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: dataDir, Driver: "sqlite", PhotoMaxSizeKB: -1, PhotoQuality: 150}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if profile.PhotoMaxSizeKB != 500 || profile.PhotoQuality != 85 {
			t.Errorf("expected defaults 500/85, got %d/%d", profile.PhotoMaxSizeKB, profile.PhotoQuality)
		}
	})
}

func clearEnvVars() {
	envVars := []string{
		"ADOTEPET_OPERATOR_WEBHOOK_URL",
		"ADOTEPET_OPERATOR_RECIPIENT",
		"ADOTEPET_PHOTO_MAX_SIZE_KB",
		"ADOTEPET_PHOTO_QUALITY",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}
