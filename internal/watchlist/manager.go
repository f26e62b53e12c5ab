package watchlist

import (
	"log"
	"slices"
	"strings"
	"sync"

	"FinDocSignal/internal/model"
)

// Manager tracks watched symbols with concurrency safety. An empty file path
// keeps the state in memory only.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager creates a Manager, loading state from disk. The seed symbols are
// used only when no state has been saved yet.
func NewManager(filePath string, seed []string) (*Manager, error) {
	state := &model.WatchlistState{}
	if filePath != "" {
		var err error
		if state, err = LoadState(filePath); err != nil {
			return nil, err
		}
	}
	if state.LastLabels == nil {
		state.LastLabels = map[string]model.Label{}
	}
	if len(state.Symbols) == 0 {
		for _, s := range seed {
			if s = normalize(s); s != "" && !slices.Contains(state.Symbols, s) {
				state.Symbols = append(state.Symbols, s)
			}
		}
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Symbols returns a copy of the watched symbols in insertion order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Symbols)
}

// Add watches symbol. It reports false if it was already watched or empty.
func (m *Manager) Add(symbol string) (bool, error) {
	symbol = normalize(symbol)
	m.mu.Lock()
	defer m.mu.Unlock()

	if symbol == "" || slices.Contains(m.state.Symbols, symbol) {
		return false, nil
	}
	m.state.Symbols = append(m.state.Symbols, symbol)
	return true, m.save()
}

// Remove stops watching symbol and forgets its last label.
func (m *Manager) Remove(symbol string) (bool, error) {
	symbol = normalize(symbol)
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.Index(m.state.Symbols, symbol)
	if i < 0 {
		return false, nil
	}
	m.state.Symbols = slices.Delete(m.state.Symbols, i, i+1)
	delete(m.state.LastLabels, symbol)
	return true, m.save()
}

// UpdateLabel stores the latest label of symbol and returns the previous one.
// changed is false on the first label and when the label is unchanged.
func (m *Manager) UpdateLabel(symbol string, label model.Label) (prev model.Label, changed bool) {
	symbol = normalize(symbol)
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, seen := m.state.LastLabels[symbol]
	m.state.LastLabels[symbol] = label
	if err := m.save(); err != nil {
		log.Printf("[ERROR] save watchlist state: %v", err)
	}
	return prev, seen && prev != label
}

func (m *Manager) save() error {
	if m.filePath == "" {
		return nil
	}
	return SaveState(m.filePath, m.state)
}
