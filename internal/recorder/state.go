// Package recorder logs simulator sessions to the session database.
package recorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/cubesim/internal/config"
)

// AppState is what survives between runs: the session that has not ended
// yet and the cube that was mirrored last.
type AppState struct {
	ActiveSessionID string `json:"active_session_id,omitempty"`
	LastDeviceID    string `json:"last_device_id,omitempty"`
	LastDeviceName  string `json:"last_device_name,omitempty"`
}

// StateFile keeps AppState in a small JSON file. Every change is written
// through immediately.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns ~/.cubesim/state.json.
func DefaultStatePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile reads the state at path. A missing file is an empty state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return sf, nil
	case err != nil:
		return nil, fmt.Errorf("recorder: read state: %w", err)
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return nil, fmt.Errorf("recorder: parse %s: %w", path, err)
	}
	return sf, nil
}

func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// update applies fn and writes the result through a temp file, so a crash
// mid-write leaves the previous state in place.
func (sf *StateFile) update(fn func(*AppState)) error {
	next := sf.state
	fn(&next)

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("recorder: encode state: %w", err)
	}

	dir := filepath.Dir(sf.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("recorder: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("recorder: write state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("recorder: write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("recorder: write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), sf.path); err != nil {
		return fmt.Errorf("recorder: write state: %w", err)
	}

	sf.state = next
	return nil
}

// State returns a copy of the loaded state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetActiveSession marks sessionID as running until ClearActiveSession.
func (sf *StateFile) SetActiveSession(sessionID string) error {
	return sf.update(func(s *AppState) { s.ActiveSessionID = sessionID })
}

func (sf *StateFile) ClearActiveSession() error {
	return sf.update(func(s *AppState) { s.ActiveSessionID = "" })
}

// ActiveSessionID returns the session that was running when the process
// last exited, if it never ended cleanly.
func (sf *StateFile) ActiveSessionID() string {
	return sf.state.ActiveSessionID
}

// SetLastDevice remembers the mirrored cube so the next scan can prefer it.
func (sf *StateFile) SetLastDevice(deviceID, deviceName string) error {
	return sf.update(func(s *AppState) {
		s.LastDeviceID = deviceID
		s.LastDeviceName = deviceName
	})
}

func (sf *StateFile) LastDeviceID() string {
	return sf.state.LastDeviceID
}
