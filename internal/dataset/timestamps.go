package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mgcare/carefinder/internal/config"
)

// Timestamps records when each bundled register was last downloaded.
// Written by the manual update procedure, read once at startup, and used
// only for staleness display. The running process never updates it.
type Timestamps struct {
	Scotland string `json:"scotland,omitempty"`
	RQIA     string `json:"rqia,omitempty"`
	HIQA     string `json:"hiqa,omitempty"`
}

// LoadTimestamps reads the sidecar record from the data directory.
// A missing or unreadable file yields zero timestamps, never an error.
func LoadTimestamps(dataDir string) Timestamps {
	var ts Timestamps
	raw, err := os.ReadFile(filepath.Join(dataDir, config.TimestampsFile))
	if err != nil {
		return ts
	}
	_ = json.Unmarshal(raw, &ts)
	return ts
}

// DaysOld returns how many days ago the given timestamp was, or -1 when
// the timestamp is absent or unparseable.
func DaysOld(stamp string) int {
	t, ok := parseStamp(stamp)
	if !ok {
		return -1
	}
	return int(time.Since(t).Hours() / 24)
}

// Stale reports whether the timestamp is absent or older than the
// advisory warning threshold.
func Stale(stamp string) bool {
	days := DaysOld(stamp)
	return days < 0 || days > config.StaleWarningDays
}

// FormatAge renders a timestamp for freshness reports, e.g.
// "June 2026 (78 days old)". Absent timestamps render "Not available".
func FormatAge(stamp string) string {
	t, ok := parseStamp(stamp)
	if !ok {
		return "Not available"
	}
	return fmt.Sprintf("%s %d (%d days old)", t.Month(), t.Year(), DaysOld(stamp))
}

func parseStamp(stamp string) (time.Time, bool) {
	if stamp == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, stamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
