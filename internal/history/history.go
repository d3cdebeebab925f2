// Package history records completed scans so past results can be listed
// without re-querying the backend.
package history

import (
	"context"
	"time"
)

// Entry is one completed scan.
type Entry struct {
	Address    string
	RiskScore  float64
	RiskLabel  string
	Sanctioned bool
	ScannedAt  time.Time
}

// Store persists scan history. The memory store is the default; the
// postgres store is used when DATABASE_URL is set.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}
