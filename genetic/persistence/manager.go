package persistence

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manager handles save/load of run checkpoints
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a run's checkpoint file
func (m *Manager) FilePath(runID string) string {
	return filepath.Join(m.basePath, runID+".toml")
}

// Exists checks if a checkpoint file exists
func (m *Manager) Exists(runID string) bool {
	_, err := os.Stat(m.FilePath(runID))
	return err == nil
}

// Save writes a checkpoint to disk, replacing any previous one atomically
func (m *Manager) Save(dto CheckpointDTO) error {
	if dto.RunID == "" {
		return fmt.Errorf("checkpoint has no run id")
	}
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(dto)
	if err != nil {
		return fmt.Errorf("encode checkpoint %s: %w", dto.RunID, err)
	}

	path := m.FilePath(dto.RunID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	slog.Debug("checkpoint saved", "run", dto.RunID, "step", dto.Step, "fitness", dto.Fitness)
	return nil
}

// Load reads a checkpoint from disk
func (m *Manager) Load(runID string) (CheckpointDTO, error) {
	var dto CheckpointDTO

	data, err := os.ReadFile(m.FilePath(runID))
	if err != nil {
		return dto, err
	}

	if err := toml.Unmarshal(data, &dto); err != nil {
		return dto, fmt.Errorf("decode checkpoint %s: %w", runID, err)
	}

	return dto, nil
}
