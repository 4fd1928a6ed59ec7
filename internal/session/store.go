// Package session holds the authenticated session: the bearer token and
// the agent profile it was issued for, kept in memory and mirrored to a
// file so the session survives across CLI invocations.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/casaflow/crm-cli-go/internal/domain"

	"go.uber.org/zap"
)

// persistedSession is the on-disk shape. Token and agent live in one
// document so they can only ever be written or removed together.
type persistedSession struct {
	Token string        `json:"token"`
	Agent *domain.Agent `json:"agent"`
}

// FileStore persists the session pair to a single JSON file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Save writes token and agent as one document. The write goes through a
// temp file in the same directory followed by a rename, so a crash can
// never leave a half-written session behind.
func (s *FileStore) Save(token string, agent *domain.Agent) error {
	if token == "" || agent == nil {
		return errors.New("session: token and agent must both be set")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(persistedSession{Token: token, Agent: agent})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

// Load reads the persisted pair. A missing, unreadable, unparseable or
// half-populated file all yield the cleared state — startup must never
// fail because of a stale session file.
func (s *FileStore) Load() (string, *domain.Agent) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("session: unreadable session file, treating as logged out",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return "", nil
	}

	var p persistedSession
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Debug("session: corrupt session file, treating as logged out",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return "", nil
	}

	if p.Token == "" || p.Agent == nil {
		return "", nil
	}
	return p.Token, p.Agent
}

// Clear removes the session file. Clearing an already-cleared store is a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
