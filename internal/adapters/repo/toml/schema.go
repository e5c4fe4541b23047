package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int         `toml:"version"`
	Prefs   prefsSchema `toml:"prefs"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported progress schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// prefsSchema keeps the persisted key names verbatim so files stay
// interchangeable with the SQLite and Redis stores.
type prefsSchema struct {
	LastCheckInDate   string `toml:"LastCheckInDate,omitempty"`
	CurrentStreak     int    `toml:"CurrentStreak"`
	LongestStreak     int    `toml:"LongestStreak"`
	TotalCheckIns     int    `toml:"TotalCheckIns"`
	TotalInteractions int    `toml:"TotalInteractions"`
	TodayInteractions int    `toml:"TodayInteractions"`
	InteractionDate   string `toml:"InteractionDate,omitempty"`
	FirstTimeUser     int    `toml:"FirstTimeUser,omitempty"`
}
