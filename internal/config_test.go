package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStoreConfig_EmptyBackendDefaultsWeb3(t *testing.T) {
	cfg := StoreConfig{Endpoint: "https://store.example", Token: "x"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty backend should default to web3: %v", err)
	}
	if cfg.Backend != StoreBackendWeb3 {
		t.Errorf("backend = %q", cfg.Backend)
	}
}

func TestStoreConfig_Web3RequiresCredentials(t *testing.T) {
	cfg := StoreConfig{Backend: StoreBackendWeb3, Endpoint: "https://store.example"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("web3 backend without token should fail")
	}
}

func TestStoreConfig_LocalRequiresPath(t *testing.T) {
	cfg := StoreConfig{Backend: StoreBackendLocal}
	if err := cfg.Validate(); err == nil {
		t.Fatal("local backend without path should fail")
	}
	cfg.Path = "./blobs"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("local backend with path should pass: %v", err)
	}
}

func TestStoreConfig_UnknownBackend(t *testing.T) {
	cfg := StoreConfig{Backend: "tape"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown backend should fail validation")
	}
}

func TestRegistryConfig_RequiresEndpoints(t *testing.T) {
	cfg := RegistryConfig{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty registry config should fail")
	}
	cfg.IndexerURL = "https://index.example"
	cfg.RelayURL = "https://relay.example"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("registry config with endpoints should pass: %v", err)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
