// Package app contains application services for the network context.
package app

import (
	"sort"
	"sync"

	"github.com/fd1az/minaview/business/network/domain"
	"github.com/fd1az/minaview/internal/apperror"
)

// Resolver maps network ids to endpoint pairs. An operator-set override
// replaces the archive endpoint for every network until cleared; the daemon
// endpoint always comes from the profile table.
type Resolver struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
	override string
}

// NewResolver builds a resolver from a static profile table.
func NewResolver(profiles []domain.Profile) *Resolver {
	table := make(map[string]domain.Profile, len(profiles))
	for _, p := range profiles {
		table[p.ID] = p
	}
	return &Resolver{profiles: table}
}

// Resolve returns the endpoint pair for a network id.
func (r *Resolver) Resolve(id string) (domain.Endpoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return domain.Endpoints{}, apperror.New(apperror.CodeUnknownNetwork,
			apperror.WithContext("network_id", id))
	}

	ep := domain.Endpoints{Archive: p.ArchiveURL, Daemon: p.DaemonURL}
	if r.override != "" {
		ep.Archive = r.override
	}
	return ep, nil
}

// Profile returns the full profile for a network id.
func (r *Resolver) Profile(id string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return domain.Profile{}, apperror.New(apperror.CodeUnknownNetwork,
			apperror.WithContext("network_id", id))
	}
	return p, nil
}

// Profiles lists all known networks sorted by id.
func (r *Resolver) Profiles() []domain.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetOverride points the archive endpoint at url for all networks.
func (r *Resolver) SetOverride(url string) {
	r.mu.Lock()
	r.override = url
	r.mu.Unlock()
}

// ClearOverride restores per-network archive endpoints.
func (r *Resolver) ClearOverride() {
	r.mu.Lock()
	r.override = ""
	r.mu.Unlock()
}

// Override returns the current archive override, empty if none.
func (r *Resolver) Override() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.override
}
