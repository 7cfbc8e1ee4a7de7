package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"wa-coach-bot/internal/domain"
	apperrors "wa-coach-bot/pkg/errors"

	"github.com/google/uuid"
)

const sessionFileName = "session.json"

// SessionBackupService copies the gateway's auth session file into the
// backup directory as timestamped snapshots. Everything here is
// best-effort: a failed backup is logged by the caller and never fatal.
type SessionBackupService struct {
	sessionDir string
	backupDir  string
	logger     domain.Logger
}

// NewSessionBackupService creates the backup service.
func NewSessionBackupService(sessionDir, backupDir string, logger domain.Logger) *SessionBackupService {
	return &SessionBackupService{
		sessionDir: sessionDir,
		backupDir:  backupDir,
		logger:     logger,
	}
}

// Backup writes one snapshot. A missing session file means the gateway has
// not paired yet; that is not an error.
func (s *SessionBackupService) Backup() error {
	src := filepath.Join(s.sessionDir, sessionFileName)
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No session file to back up", "path", src)
			return nil
		}
		return apperrors.NewStorageError("failed to read session file", err)
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return apperrors.NewStorageError("failed to create backup directory", err)
	}

	name := fmt.Sprintf("session_backup_%d_%s.json", time.Now().UnixMilli(), uuid.NewString()[:8])
	dst := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return apperrors.NewStorageError("failed to write session backup", err)
	}

	s.logger.Info("Session backed up", "snapshot", name)
	return nil
}
