/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures the chat client by reading operating system environment variables,
including the running environment, the chat server endpoint, the room to join,
and the location of the persisted identity slot.
*/
package configs

import (
	"net/url"
	"os"

	"roomchat/internal/pkg/errs"
)

// DefaultServerURL is the chat endpoint used when CHAT_SERVER_URL is not set.
// It matches the local playground server's WebSocket route.
const DefaultServerURL = "ws://localhost:8000/ws"

// AppConfig contains all configuration parameters required for the client to run.
// All configuration values are loaded from environment variables; the command-line
// front end may override individual fields with flags afterwards.
type AppConfig struct {
	// Environment selects logging behavior ("development" or "production").
	Environment string

	// ServerURL is the WebSocket endpoint of the chat server.
	ServerURL string

	// Room is the identifier of the room to join. May be left empty here and
	// supplied via flag; the session controller rejects an empty room.
	Room string

	// DisplayName is the participant's chosen name. May be left empty here and
	// solicited interactively.
	DisplayName string

	// IdentityFile is the path of the persisted identity slot. Empty means the
	// per-user default location.
	IdentityFile string
}

// LoadConfig reads and parses the client configuration from environment variables.
// It provides default values for each configuration item and validates the
// server endpoint. It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.ServerURL = os.Getenv("CHAT_SERVER_URL")
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	if err := ValidateServerURL(cfg.ServerURL); err != nil {
		return nil, err
	}

	cfg.Room = os.Getenv("CHAT_ROOM")
	cfg.DisplayName = os.Getenv("CHAT_DISPLAY_NAME")
	cfg.IdentityFile = os.Getenv("CHAT_IDENTITY_FILE")

	return cfg, nil
}

// ValidateServerURL checks that the given endpoint parses as a URL with a
// ws or wss scheme and a host.
func ValidateServerURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errs.NewError(errs.ErrServerURLInvalid, rawURL)
	}

	if (parsed.Scheme != "ws" && parsed.Scheme != "wss") || parsed.Host == "" {
		return errs.NewError(errs.ErrServerURLInvalid, rawURL)
	}

	return nil
}
