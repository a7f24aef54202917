package dataset

import (
	"log/slog"
	"path/filepath"

	"github.com/mgcare/carefinder/internal/config"
)

// Snapshot holds the bundled registers for the jurisdictions served from
// local files. Loaded once at startup and read-only afterwards, so it is
// safe to share across request handlers without locking.
type Snapshot struct {
	Scotland        []ProviderRecord
	NorthernIreland []ProviderRecord
	Ireland         []ProviderRecord
	Timestamps      Timestamps
}

// Load reads every bundled register from the data directory. A register
// whose file is missing or unreadable is logged and served empty; one bad
// file must not take down the other jurisdictions.
func Load(dataDir string, logger *slog.Logger) *Snapshot {
	snap := &Snapshot{
		Timestamps: LoadTimestamps(dataDir),
	}

	if recs, err := loadScotland(filepath.Join(dataDir, config.ScotlandFile)); err != nil {
		logger.Warn("scotland register unavailable", "error", err)
	} else {
		snap.Scotland = recs
	}

	if recs, err := loadRQIA(filepath.Join(dataDir, config.RQIAFile)); err != nil {
		logger.Warn("rqia register unavailable", "error", err)
	} else {
		snap.NorthernIreland = recs
	}

	if recs, err := loadHIQA(filepath.Join(dataDir, config.HIQAFile)); err != nil {
		logger.Warn("hiqa register unavailable", "error", err)
	} else {
		snap.Ireland = recs
	}

	logger.Info("registers loaded",
		"scotland", len(snap.Scotland),
		"northernIreland", len(snap.NorthernIreland),
		"ireland", len(snap.Ireland))

	return snap
}
