package app

import (
	"context"
	"sync"

	"github.com/fd1az/minaview/business/network/domain"
	"github.com/fd1az/minaview/internal/logger"
)

const selectionSlot = "network"

type persistedSelection struct {
	NetworkID string `json:"network_id"`
}

// Session owns the active network selection. Switching networks re-resolves
// endpoints and retargets every attached client under one lock, so no client
// ever observes a half-applied switch. Each switch bumps the epoch.
type Session struct {
	resolver *Resolver
	store    SelectionStore
	log      logger.LoggerInterface

	mu       sync.RWMutex
	active   domain.Profile
	epoch    uint64
	archives []EndpointTarget
	daemons  []EndpointTarget
}

// NewSession restores the last persisted selection when valid, otherwise
// falls back to defaultID. store may be nil, which disables persistence.
func NewSession(resolver *Resolver, store SelectionStore, defaultID string, log logger.LoggerInterface) (*Session, error) {
	id := defaultID
	if store != nil {
		var sel persistedSelection
		if ok, err := store.Load(selectionSlot, &sel); err == nil && ok && sel.NetworkID != "" {
			if _, perr := resolver.Profile(sel.NetworkID); perr == nil {
				id = sel.NetworkID
			}
		}
	}

	profile, err := resolver.Profile(id)
	if err != nil {
		return nil, err
	}

	return &Session{
		resolver: resolver,
		store:    store,
		log:      log,
		active:   profile,
	}, nil
}

// AttachArchive registers an archive-side client and immediately points it at
// the active endpoints.
func (s *Session) AttachArchive(t EndpointTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archives = append(s.archives, t)
	if ep, err := s.resolver.Resolve(s.active.ID); err == nil {
		t.SetEndpoint(ep.Archive)
	}
}

// AttachDaemon registers a daemon-side client and immediately points it at
// the active endpoints.
func (s *Session) AttachDaemon(t EndpointTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daemons = append(s.daemons, t)
	if ep, err := s.resolver.Resolve(s.active.ID); err == nil {
		t.SetEndpoint(ep.Daemon)
	}
}

// Use switches the session to networkID. Unknown ids leave the session
// untouched and return UNKNOWN_NETWORK.
func (s *Session) Use(ctx context.Context, networkID string) error {
	profile, err := s.resolver.Profile(networkID)
	if err != nil {
		return err
	}
	ep, err := s.resolver.Resolve(networkID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.active = profile
	s.epoch++
	for _, t := range s.archives {
		t.SetEndpoint(ep.Archive)
	}
	for _, t := range s.daemons {
		t.SetEndpoint(ep.Daemon)
	}
	epoch := s.epoch
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(selectionSlot, persistedSelection{NetworkID: networkID}); err != nil {
			s.log.Warn(ctx, "failed to persist network selection", "network", networkID, "error", err)
		}
	}

	s.log.Info(ctx, "network switched", "network", networkID, "epoch", epoch)
	return nil
}

// Active returns the profile of the currently selected network.
func (s *Session) Active() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Endpoints resolves the active network's endpoint pair, override included.
func (s *Session) Endpoints() (domain.Endpoints, error) {
	s.mu.RLock()
	id := s.active.ID
	s.mu.RUnlock()
	return s.resolver.Resolve(id)
}

// Snapshot captures the current selection generation.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{NetworkID: s.active.ID, Epoch: s.epoch}
}

// Stale reports whether snap predates the current selection.
func (s *Session) Stale(snap domain.Snapshot) bool {
	cur := s.Snapshot()
	return snap != cur
}

// Resolver exposes the underlying resolver for override management.
func (s *Session) Resolver() *Resolver {
	return s.resolver
}

// RefreshEndpoints re-applies the active network's resolution to all attached
// clients. Called after an override changes.
func (s *Session) RefreshEndpoints() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, err := s.resolver.Resolve(s.active.ID)
	if err != nil {
		return
	}
	for _, t := range s.archives {
		t.SetEndpoint(ep.Archive)
	}
	for _, t := range s.daemons {
		t.SetEndpoint(ep.Daemon)
	}
}
