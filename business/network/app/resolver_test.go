package app

import (
	"testing"

	"github.com/fd1az/minaview/business/network/domain"
	"github.com/fd1az/minaview/internal/apperror"
)

func testProfiles() []domain.Profile {
	return []domain.Profile{
		{ID: "mainnet", DisplayName: "Mainnet", ArchiveURL: "https://archive.main/graphql", DaemonURL: "https://daemon.main/graphql"},
		{ID: "devnet", DisplayName: "Devnet", ArchiveURL: "https://archive.dev/graphql", DaemonURL: "https://daemon.dev/graphql", Testnet: true},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(testProfiles())

	tests := []struct {
		name        string
		id          string
		wantArchive string
		wantDaemon  string
		wantErr     bool
	}{
		{
			name:        "known network",
			id:          "mainnet",
			wantArchive: "https://archive.main/graphql",
			wantDaemon:  "https://daemon.main/graphql",
		},
		{
			name:        "second network",
			id:          "devnet",
			wantArchive: "https://archive.dev/graphql",
			wantDaemon:  "https://daemon.dev/graphql",
		},
		{
			name:    "unknown network",
			id:      "berkeley",
			wantErr: true,
		},
		{
			name:    "empty id",
			id:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := r.Resolve(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !apperror.IsCode(err, apperror.CodeUnknownNetwork) {
					t.Errorf("expected UNKNOWN_NETWORK, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if ep.Archive != tt.wantArchive {
				t.Errorf("archive = %s, want %s", ep.Archive, tt.wantArchive)
			}
			if ep.Daemon != tt.wantDaemon {
				t.Errorf("daemon = %s, want %s", ep.Daemon, tt.wantDaemon)
			}
		})
	}
}

func TestResolver_Override(t *testing.T) {
	r := NewResolver(testProfiles())
	custom := "https://my-own-archive.example/graphql"

	r.SetOverride(custom)

	// Override applies to every network's archive endpoint, never the daemon.
	for _, id := range []string{"mainnet", "devnet"} {
		ep, err := r.Resolve(id)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", id, err)
		}
		if ep.Archive != custom {
			t.Errorf("%s archive = %s, want override %s", id, ep.Archive, custom)
		}
		if ep.Daemon == custom {
			t.Errorf("%s daemon must not be overridden", id)
		}
	}

	// Unknown networks still fail even with an override set.
	if _, err := r.Resolve("berkeley"); err == nil {
		t.Error("override must not make unknown networks resolvable")
	}

	r.ClearOverride()

	ep, err := r.Resolve("mainnet")
	if err != nil {
		t.Fatalf("Resolve after clear: %v", err)
	}
	if ep.Archive != "https://archive.main/graphql" {
		t.Errorf("archive after clear = %s, want original", ep.Archive)
	}
}

func TestResolver_Profiles(t *testing.T) {
	r := NewResolver(testProfiles())

	got := r.Profiles()
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}
	// Sorted by id.
	if got[0].ID != "devnet" || got[1].ID != "mainnet" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}
