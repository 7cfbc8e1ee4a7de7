package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSessionBackupService_MissingSessionFile(t *testing.T) {
	backup := NewSessionBackupService(t.TempDir(), t.TempDir(), NewMockLogger())

	if err := backup.Backup(); err != nil {
		t.Fatalf("expected missing session file to be a no-op, got %v", err)
	}
}

func TestSessionBackupService_WritesSnapshot(t *testing.T) {
	sessionDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "snapshots")
	content := []byte(`{"clientID":"abc","serverToken":"xyz"}`)
	if err := os.WriteFile(filepath.Join(sessionDir, sessionFileName), content, 0o600); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}

	backup := NewSessionBackupService(sessionDir, backupDir, NewMockLogger())
	if err := backup.Backup(); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("failed to read backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(entries))
	}

	name := entries[0].Name()
	if !strings.HasPrefix(name, "session_backup_") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected snapshot name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(backupDir, name))
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(data) != string(content) {
		t.Fatalf("snapshot does not match the session file: %q", data)
	}
}

func TestSessionBackupService_SnapshotsAccumulate(t *testing.T) {
	sessionDir := t.TempDir()
	backupDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(sessionDir, sessionFileName), []byte(`{}`), 0o600); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}

	backup := NewSessionBackupService(sessionDir, backupDir, NewMockLogger())
	for i := 0; i < 3; i++ {
		if err := backup.Backup(); err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("failed to read backup dir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(entries))
	}
}
