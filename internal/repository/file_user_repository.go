package repository

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"wa-coach-bot/internal/domain"
	apperrors "wa-coach-bot/pkg/errors"
)

// FileUserRepository persists the user collection as a single JSON file,
// matching the users.json artifact the bot has always shadowed.
type FileUserRepository struct {
	path   string
	logger domain.Logger
}

// NewFileUserRepository creates a file-backed user repository.
func NewFileUserRepository(path string, logger domain.Logger) domain.UserRepository {
	return &FileUserRepository{
		path:   path,
		logger: logger,
	}
}

// Load reads the whole collection. A missing file is not an error: the store
// starts empty. A corrupt file surfaces a storage error for the caller to
// recover from.
func (r *FileUserRepository) Load() ([]*domain.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("User store file not present yet", "path", r.path)
			return []*domain.User{}, nil
		}
		return nil, apperrors.NewStorageError("failed to read user store", err)
	}

	var users []*domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, apperrors.NewStorageError("failed to parse user store", err)
	}

	r.logger.Info("Loaded users from storage", "count", len(users), "path", r.path)
	return users, nil
}

// Save overwrites the whole collection atomically: write to a temp file in
// the same directory, then rename over the target.
func (r *FileUserRepository) Save(users []*domain.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("failed to encode user store", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return apperrors.NewStorageError("failed to create temp user store", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to write user store", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to close user store", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to replace user store", err)
	}
	return nil
}
