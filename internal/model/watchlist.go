package model

import "time"

// WatchlistState is the persisted set of watched symbols and their last labels.
type WatchlistState struct {
	Symbols    []string         `json:"symbols"`
	LastLabels map[string]Label `json:"last_labels"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
