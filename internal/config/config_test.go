package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Networks.Default != "mainnet" {
		t.Errorf("default network = %q, want mainnet", cfg.Networks.Default)
	}
	if cfg.Networks.ArchiveOverride != "" {
		t.Errorf("archive override = %q, want empty", cfg.Networks.ArchiveOverride)
	}
	if len(cfg.Networks.Profiles) == 0 {
		t.Fatal("expected built-in network profiles")
	}
}

func TestLoadArchiveOverrideFromEnv(t *testing.T) {
	t.Setenv("MINAVIEW_ARCHIVE_OVERRIDE", "http://localhost:3085/graphql")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Networks.ArchiveOverride != "http://localhost:3085/graphql" {
		t.Errorf("archive override = %q, want http://localhost:3085/graphql", cfg.Networks.ArchiveOverride)
	}
}

func TestLoadNetworkSelectionFromEnv(t *testing.T) {
	t.Setenv("MINAVIEW_NETWORK", "devnet")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Networks.Default != "devnet" {
		t.Errorf("default network = %q, want devnet", cfg.Networks.Default)
	}
}
