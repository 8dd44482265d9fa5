package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/cooperpro/internal/config"
	"github.com/misterclayt0n/cooperpro/internal/models"
	log "github.com/sirupsen/logrus"
)

const draftFileName = "current_session.toml"

// DraftPath is where the interval session being built is kept.
func DraftPath() (string, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, draftFileName), nil
}

// SaveSessionState replaces the draft file through a temporary file and a
// rename.
func SaveSessionState(state *models.IntervalDraft) error {
	path, err := DraftPath()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(state); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	log.WithFields(log.Fields{"session": state.SessionID, "intervals": len(state.Intervals)}).Debug("draft saved")
	return os.Rename(tmp, path)
}

func LoadSessionState() (*models.IntervalDraft, error) {
	path, err := DraftPath()
	if err != nil {
		return nil, err
	}

	var state models.IntervalDraft
	if _, err := toml.DecodeFile(path, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func ClearSessionState() error {
	path, err := DraftPath()
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func SessionExists() bool {
	path, err := DraftPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
