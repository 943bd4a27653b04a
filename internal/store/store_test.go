package store

import (
	"os"
	"path/filepath"
	"testing"
)

type testDoc struct {
	Network string `json:"network"`
	Height  uint64 `json:"height"`
}

func TestFileStore_SaveLoad(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	in := testDoc{Network: "mainnet", Height: 42}
	if err := s.Save("session", in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out testDoc
	ok, err := s.Load("session", &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected slot to exist")
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	var out testDoc
	ok, err := s.Load("nope", &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("expected cold miss for missing slot")
	}
}

func TestFileStore_CorruptSlotIsColdMiss(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	var out testDoc
	ok, err := s.Load("session", &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("corrupt slot should read as a miss")
	}

	// Corrupt file is cleared so the slot can be rewritten.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt slot file should have been removed")
	}
}

func TestFileStore_InvalidSlotName(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Save("../escape", testDoc{}); err == nil {
		t.Error("expected error for path-traversal slot name")
	}
	if err := s.Save("UPPER", testDoc{}); err == nil {
		t.Error("expected error for uppercase slot name")
	}
}

func TestFileStore_Delete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Save("session", testDoc{Network: "devnet"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("session"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("session"); err != nil {
		t.Errorf("Delete of missing slot should be nil, got %v", err)
	}

	var out testDoc
	ok, _ := s.Load("session", &out)
	if ok {
		t.Error("slot should be gone after Delete")
	}
}
