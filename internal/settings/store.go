package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store persists the full Settings snapshot as a JSON file. Reads of a
// missing or unreadable file yield an empty overlay; write failures are
// logged and swallowed. Preferences must never take the tool down.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a settings store backed by the given file path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads the stored preferences as a sparse overlay
func (s *Store) Load() Partial {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read settings file",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return Partial{}
	}

	var p Partial
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("Ignoring unparsable settings file",
			zap.String("path", s.path),
			zap.Error(err))
		return Partial{}
	}

	return p
}

// Save writes the full snapshot to the settings file
func (s *Store) Save(cfg Settings) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		s.logger.Warn("Failed to marshal settings", zap.Error(err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Warn("Failed to create settings directory",
			zap.String("path", s.path),
			zap.Error(err))
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Warn("Failed to write settings file",
			zap.String("path", s.path),
			zap.Error(err))
		return
	}

	s.logger.Debug("Settings saved", zap.String("path", s.path))
}
