package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"FinDocSignal/internal/model"
)

// LoadState reads the watchlist from a JSON file. A missing file is a fresh, empty watchlist.
func LoadState(filePath string) (*model.WatchlistState, error) {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return &model.WatchlistState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	var state model.WatchlistState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode watchlist %s: %w", filePath, err)
	}
	return &state, nil
}

// SaveState writes the watchlist through a temp file and rename, so a crash
// never leaves a half-written file behind.
func SaveState(filePath string, state *model.WatchlistState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".watchlist-*")
	if err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save watchlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save watchlist: %w", err)
	}
	return os.Rename(tmp.Name(), filePath)
}
