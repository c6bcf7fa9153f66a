package configs

import (
	"errors"
	"testing"

	"roomchat/internal/pkg/errs"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CHAT_SERVER_URL", "")
	t.Setenv("CHAT_ROOM", "")
	t.Setenv("CHAT_DISPLAY_NAME", "")
	t.Setenv("CHAT_IDENTITY_FILE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected environment 'development', got %q", cfg.Environment)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("Expected server URL %q, got %q", DefaultServerURL, cfg.ServerURL)
	}
	if cfg.Room != "" || cfg.DisplayName != "" || cfg.IdentityFile != "" {
		t.Errorf("Expected empty room/name/identity file, got %+v", cfg)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CHAT_SERVER_URL", "wss://chat.example.com/ws")
	t.Setenv("CHAT_ROOM", "cm4xyz")
	t.Setenv("CHAT_DISPLAY_NAME", "Alice")
	t.Setenv("CHAT_IDENTITY_FILE", "/tmp/identity")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Expected environment 'production', got %q", cfg.Environment)
	}
	if cfg.ServerURL != "wss://chat.example.com/ws" {
		t.Errorf("Unexpected server URL %q", cfg.ServerURL)
	}
	if cfg.Room != "cm4xyz" {
		t.Errorf("Unexpected room %q", cfg.Room)
	}
	if cfg.DisplayName != "Alice" {
		t.Errorf("Unexpected display name %q", cfg.DisplayName)
	}
	if cfg.IdentityFile != "/tmp/identity" {
		t.Errorf("Unexpected identity file %q", cfg.IdentityFile)
	}
}

func TestValidateServerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"Plain ws", "ws://localhost:8000/ws", false},
		{"Secure wss", "wss://chat.example.com/ws", false},
		{"HTTP scheme", "http://localhost:8000/ws", true},
		{"No scheme", "localhost:8000", true},
		{"Missing host", "ws:///ws", true},
		{"Empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateServerURL(tc.url)
			if tc.wantErr && err == nil {
				t.Errorf("ValidateServerURL(%q) = nil, expected error", tc.url)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ValidateServerURL(%q) = %v, expected nil", tc.url, err)
			}
			if tc.wantErr && err != nil {
				var customErr *errs.CustomError
				if !errors.As(err, &customErr) || customErr.Code != errs.ErrServerURLInvalid {
					t.Errorf("Expected ErrServerURLInvalid, got %v", err)
				}
			}
		})
	}
}
