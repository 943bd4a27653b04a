// Package domain contains the network context domain model.
package domain

// Profile describes one selectable network and its GraphQL endpoint pair.
type Profile struct {
	ID          string
	DisplayName string
	ArchiveURL  string
	DaemonURL   string
	Testnet     bool
}

// Endpoints is a resolved endpoint pair, after any override is applied.
type Endpoints struct {
	Archive string
	Daemon  string
}

// Snapshot identifies a session generation. Callers capture one before a
// slow fetch and compare after, so results resolved against a previous
// network selection can be discarded.
type Snapshot struct {
	NetworkID string
	Epoch     uint64
}
