package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Content store backends.
const (
	StoreBackendWeb3  = "web3"
	StoreBackendLocal = "local"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Registry RegistryConfig    `yaml:"registry"`
	Store    StoreConfig       `yaml:"store"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Registry.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// RegistryConfig holds the endpoints of the note registry's collaborators:
// the index, the transaction relay, the content gateway, and the explorer.
type RegistryConfig struct {
	IndexerURL       string        `yaml:"indexer_url"`
	RelayURL         string        `yaml:"relay_url"`
	RelayToken       string        `yaml:"relay_token"`
	IPFSGateway      string        `yaml:"ipfs_gateway"`
	ExplorerBase     string        `yaml:"explorer_base"`
	ResolverCacheTTL time.Duration `yaml:"resolver_cache_ttl"`
}

// Validate validates the registry configuration.
func (c *RegistryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.IndexerURL, validation.Required),
		validation.Field(&c.RelayURL, validation.Required),
	)
}

// StoreConfig holds content store configuration.
//
// Backend selects where note payloads are uploaded:
//   - "web3": a web3.storage-compatible HTTP service; Endpoint and Token
//     must be set.
//   - "local": a content-addressed directory on disk, for development.
type StoreConfig struct {
	Backend  string `yaml:"backend"`
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
	Path     string `yaml:"path"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	if c.Backend == "" {
		c.Backend = StoreBackendWeb3
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(StoreBackendWeb3, StoreBackendLocal)),
	); err != nil {
		return err
	}
	switch c.Backend {
	case StoreBackendWeb3:
		if c.Endpoint == "" || c.Token == "" {
			return fmt.Errorf("store: backend is %q but endpoint or token is empty", StoreBackendWeb3)
		}
	case StoreBackendLocal:
		if c.Path == "" {
			return fmt.Errorf("store: backend is %q but path is empty", StoreBackendLocal)
		}
	}
	return nil
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Registry: RegistryConfig{
			IndexerURL:       "https://indexer.crossbell.io/v1",
			RelayURL:         "http://localhost:8545",
			IPFSGateway:      "https://ipfs.io/ipfs/",
			ExplorerBase:     "https://scan.crossbell.io/tx/",
			ResolverCacheTTL: 5 * time.Minute,
		},
		Store: StoreConfig{
			Backend: StoreBackendLocal,
			Path:    "./blobs",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
