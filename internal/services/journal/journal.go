// Package journal persists an audit trail of every ledger-affecting leg a
// replay produced, so surrounding tooling can reconstruct or export the run.
package journal

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/gowal"
	"github.com/vadiminshakov/realized/internal/domain"
)

const (
	legKeyPrefix        = "acct_leg_"
	walSegmentThreshold = 1000
	walMaxSegments      = 100
	walDirPermissions   = 0o755
)

// Actions recorded per leg.
const (
	ActionAcquire = "acquire"
	ActionDispose = "dispose"
)

// Entry is one journaled leg.
type Entry struct {
	ID        string           `json:"id"`
	Link      string           `json:"link,omitempty"`
	Asset     domain.Asset     `json:"asset"`
	Action    string           `json:"action"`
	Category  domain.EventType `json:"category"`
	Amount    decimal.Decimal  `json:"amount"`
	Rate      decimal.Decimal  `json:"rate"`
	Timestamp time.Time        `json:"timestamp"`
}

// Journal is a write-ahead-log backed audit trail.
type Journal struct {
	wal *gowal.Wal
}

// New opens (or creates) a journal in dir.
func New(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, walDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to ensure journal directory %s", dir)
	}

	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "log_",
		SegmentThreshold: walSegmentThreshold,
		MaxSegments:      walMaxSegments,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open journal WAL")
	}
	return &Journal{wal: wal}, nil
}

// Record appends an entry. A missing id is assigned.
func (j *Journal) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "failed to marshal journal entry")
	}
	return j.wal.Write(j.wal.CurrentIndex()+1, legKeyPrefix+e.ID, data)
}

// Entries returns every journaled leg in write order.
func (j *Journal) Entries() ([]Entry, error) {
	var out []Entry
	for msg := range j.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, legKeyPrefix) {
			continue
		}
		var e Entry
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal journal entry %s", msg.Key)
		}
		out = append(out, e)
	}
	return out, nil
}

// Close releases the underlying WAL.
func (j *Journal) Close() error {
	return j.wal.Close()
}
